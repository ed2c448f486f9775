package ledger

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"flightai/internal/domain"
)

// PGLedger appends bookings to a Postgres table with the same column set as
// the CSV layout. Rows are insert-only.
type PGLedger struct {
	db *pgxpool.Pool
}

func NewPGLedger(db *pgxpool.Pool) *PGLedger {
	return &PGLedger{db: db}
}

func (l *PGLedger) Initialize(ctx context.Context) error {
	_, err := l.db.Exec(ctx, `CREATE TABLE IF NOT EXISTS bookings (
		booking_id         text PRIMARY KEY,
		confirmation_code  text NOT NULL,
		email              text NOT NULL,
		destination        text NOT NULL,
		date               text NOT NULL,
		num_tickets        int  NOT NULL,
		ticket_class       text NOT NULL,
		total_price        int  NOT NULL,
		loyalty_points     int  NOT NULL,
		seat_preferences   text NOT NULL DEFAULT '',
		meal_preferences   text NOT NULL DEFAULT '',
		medical_assistance text NOT NULL DEFAULT '',
		special_requests   text NOT NULL DEFAULT '',
		booking_time       timestamptz NOT NULL
	)`)
	if err != nil {
		return fmt.Errorf("initialize bookings table: %w", err)
	}
	return nil
}

func (l *PGLedger) Append(ctx context.Context, b domain.Booking) error {
	_, err := l.db.Exec(ctx, `INSERT INTO bookings
		(booking_id, confirmation_code, email, destination, date, num_tickets, ticket_class, total_price, loyalty_points, seat_preferences, meal_preferences, medical_assistance, special_requests, booking_time)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		b.BookingID, b.ConfirmationCode, b.Email, b.Destination, b.Date, b.NumTickets, string(b.Class), b.TotalPrice, b.LoyaltyPoints,
		b.Preferences.Seats, b.Preferences.Meals, b.Preferences.MedicalAssistance, b.Preferences.SpecialRequests, b.CreatedAt)
	if err != nil {
		return fmt.Errorf("append booking %s: %w", b.BookingID, err)
	}
	return nil
}

var _ Ledger = (*PGLedger)(nil)
