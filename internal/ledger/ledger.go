// Package ledger persists confirmed bookings as an append-only record store.
// There are no update, delete or query operations; the booking flow only
// ever writes.
package ledger

import (
	"context"
	"strconv"

	"flightai/internal/domain"
)

// Columns is the exact persisted layout, in order. Every backend writes
// these fields and nothing else.
var Columns = []string{
	"booking_id",
	"confirmation_code",
	"email",
	"destination",
	"date",
	"num_tickets",
	"ticket_class",
	"total_price",
	"loyalty_points",
	"seat_preferences",
	"meal_preferences",
	"medical_assistance",
	"special_requests",
	"booking_time",
}

// BookingTimeLayout matches the booking_time column format.
const BookingTimeLayout = "2006-01-02 15:04:05"

type Ledger interface {
	// Initialize ensures the store exists with the expected column set,
	// creating it empty if absent. The service must not accept bookings if
	// this fails.
	Initialize(ctx context.Context) error
	// Append writes one durable record.
	Append(ctx context.Context, booking domain.Booking) error
}

func record(b domain.Booking) []string {
	return []string{
		b.BookingID,
		b.ConfirmationCode,
		b.Email,
		b.Destination,
		b.Date,
		strconv.Itoa(b.NumTickets),
		string(b.Class),
		strconv.Itoa(b.TotalPrice),
		strconv.Itoa(b.LoyaltyPoints),
		b.Preferences.Seats,
		b.Preferences.Meals,
		b.Preferences.MedicalAssistance,
		b.Preferences.SpecialRequests,
		b.CreatedAt.Format(BookingTimeLayout),
	}
}
