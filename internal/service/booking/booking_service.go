package booking

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"flightai/internal/catalog"
	"flightai/internal/domain"
	"flightai/internal/kafka"
	"flightai/internal/ledger"
	"flightai/internal/seats"
)

type UseCase interface {
	Quote(ctx context.Context, destination, date, class string) (*domain.Quote, error)
	Book(ctx context.Context, input BookInput) (*domain.Booking, error)
	AvailableDates(ctx context.Context, destination string) ([]string, error)
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type Service struct {
	catalog            *catalog.Catalog
	seats              *seats.Inventory
	ledger             ledger.Ledger
	producer           Producer
	eventsTopic        string
	notificationsTopic string
	log                *zap.Logger
	now                func() time.Time

	// mu serializes the availability-check / decrement / append sequence.
	// Without it two concurrent bookings for the last seat both pass the
	// check and oversubscribe the counter.
	mu      sync.Mutex
	counter uint64
}

type BookInput struct {
	Destination string             `json:"destination"`
	Date        string             `json:"date"`
	NumTickets  int                `json:"num_tickets"`
	Class       string             `json:"ticket_class"`
	Email       string             `json:"email"`
	Preferences domain.Preferences `json:"preferences"`
}

type Option func(*Service)

func WithProducer(producer Producer, eventsTopic string) Option {
	return func(s *Service) {
		s.producer = producer
		s.eventsTopic = eventsTopic
	}
}

func WithNotificationsTopic(topic string) Option {
	return func(s *Service) {
		s.notificationsTopic = topic
	}
}

func WithNow(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

func NewService(cat *catalog.Catalog, inv *seats.Inventory, led ledger.Ledger, log *zap.Logger, opts ...Option) *Service {
	s := &Service{
		catalog: cat,
		seats:   inv,
		ledger:  led,
		log:     log,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Quote answers a "check flight" query: fare and current availability for
// (destination, date, class), plus the loyalty points one ticket would earn.
// It never touches the seat counters or the ledger. A date outside the
// booking window simply quotes zero availability.
func (s *Service) Quote(ctx context.Context, destination, date, class string) (*domain.Quote, error) {
	city := strings.ToLower(strings.TrimSpace(destination))

	fareClass, ok := domain.ParseFareClass(class)
	if !ok {
		return nil, &domain.UnknownRouteError{Destination: city, Class: class}
	}
	price, ok := s.catalog.Price(city, fareClass)
	if !ok {
		return nil, &domain.UnknownRouteError{Destination: city, Class: class}
	}

	return &domain.Quote{
		Destination:   city,
		Date:          date,
		Class:         fareClass,
		Price:         price,
		Availability:  s.seats.Check(city, date, fareClass),
		LoyaltyPoints: loyaltyPoints(price),
	}, nil
}

// Book runs the validation pipeline and, on success, commits the booking:
// decrements seat availability and appends one record to the ledger.
func (s *Service) Book(ctx context.Context, input BookInput) (*domain.Booking, error) {
	city := strings.ToLower(strings.TrimSpace(input.Destination))

	if input.NumTickets <= 0 {
		return nil, errors.New("num tickets must be positive")
	}
	if !s.catalog.IsValidDate(input.Date) {
		return nil, &domain.InvalidDateError{Date: input.Date}
	}
	if !validEmail(input.Email) {
		return nil, &domain.InvalidEmailError{Email: input.Email}
	}

	fareClass, ok := domain.ParseFareClass(input.Class)
	if !ok {
		return nil, &domain.UnknownRouteError{Destination: city, Class: input.Class}
	}
	price, ok := s.catalog.Price(city, fareClass)
	if !ok {
		return nil, &domain.UnknownRouteError{Destination: city, Class: input.Class}
	}

	s.mu.Lock()
	available := s.seats.Check(city, input.Date, fareClass)
	if available < input.NumTickets {
		s.mu.Unlock()
		return nil, &domain.InsufficientSeatsError{
			Destination: city,
			Date:        input.Date,
			Class:       fareClass,
			Requested:   input.NumTickets,
			Available:   available,
		}
	}

	s.counter++
	bookingID := fmt.Sprintf("BK-%06d", s.counter)
	totalPrice := price * input.NumTickets

	booking := &domain.Booking{
		BookingID:        bookingID,
		ConfirmationCode: ConfirmationCode(bookingID),
		Email:            input.Email,
		Destination:      city,
		Date:             input.Date,
		NumTickets:       input.NumTickets,
		Class:            fareClass,
		TotalPrice:       totalPrice,
		LoyaltyPoints:    loyaltyPoints(totalPrice),
		Preferences:      input.Preferences,
		CreatedAt:        s.now(),
	}

	s.seats.Decrement(city, input.Date, fareClass, input.NumTickets)
	if err := s.ledger.Append(ctx, *booking); err != nil {
		s.seats.Restore(city, input.Date, fareClass, input.NumTickets)
		s.mu.Unlock()
		return nil, fmt.Errorf("append booking to ledger: %w", err)
	}
	s.mu.Unlock()

	s.publish(ctx, booking)
	return booking, nil
}

// AvailableDates lists upcoming dates for destination that still have
// economy seats.
func (s *Service) AvailableDates(ctx context.Context, destination string) ([]string, error) {
	city := strings.ToLower(strings.TrimSpace(destination))
	if _, ok := s.catalog.Price(city, domain.FareClassEconomy); !ok {
		return nil, &domain.UnknownRouteError{Destination: city, Class: string(domain.FareClassEconomy)}
	}
	return s.seats.AvailableDates(city), nil
}

func (s *Service) publish(ctx context.Context, booking *domain.Booking) {
	if s.producer == nil || s.eventsTopic == "" {
		return
	}
	event := kafka.BookingEvent{
		Type:             "booking_confirmed",
		BookingID:        booking.BookingID,
		ConfirmationCode: booking.ConfirmationCode,
		Email:            booking.Email,
		Destination:      booking.Destination,
		Date:             booking.Date,
		NumTickets:       booking.NumTickets,
		TicketClass:      string(booking.Class),
		TotalPrice:       booking.TotalPrice,
		LoyaltyPoints:    booking.LoyaltyPoints,
		BookedAt:         booking.CreatedAt.Format(time.RFC3339),
	}
	if err := s.producer.Publish(ctx, s.eventsTopic, booking.BookingID, event); err != nil {
		s.log.Warn("failed to publish booking event", zap.String("booking_id", booking.BookingID), zap.Error(err))
	}
	if s.notificationsTopic != "" {
		if err := s.producer.Publish(ctx, s.notificationsTopic, booking.BookingID, event); err != nil {
			s.log.Warn("failed to publish notification event", zap.String("booking_id", booking.BookingID), zap.Error(err))
		}
	}
}

// ConfirmationCode derives the 8-character uppercase code for a booking ID.
// Same ID always yields the same code.
func ConfirmationCode(bookingID string) string {
	sum := md5.Sum([]byte(bookingID))
	return strings.ToUpper(hex.EncodeToString(sum[:4]))
}

// loyaltyPoints is 10% of the price, rounded down.
func loyaltyPoints(price int) int {
	return price / 10
}

// validEmail is deliberately permissive: the presence of "@" and "." is all
// the original system ever checked, and callers depend on that laxity.
func validEmail(email string) bool {
	return strings.Contains(email, "@") && strings.Contains(email, ".")
}

var _ UseCase = (*Service)(nil)
