package ledger

import (
	"context"
	"sync"

	"flightai/internal/domain"
)

// MemoryLedger keeps appended bookings in a slice. It exists for tests and
// for running the service without a writable filesystem.
type MemoryLedger struct {
	mu       sync.Mutex
	bookings []domain.Booking
}

func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{}
}

func (l *MemoryLedger) Initialize(ctx context.Context) error {
	return nil
}

func (l *MemoryLedger) Append(ctx context.Context, booking domain.Booking) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.bookings = append(l.bookings, booking)
	return nil
}

// Bookings returns a copy of everything appended so far.
func (l *MemoryLedger) Bookings() []domain.Booking {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]domain.Booking, len(l.bookings))
	copy(out, l.bookings)
	return out
}

var _ Ledger = (*MemoryLedger)(nil)
