package ledger

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"sync"

	"flightai/internal/domain"
)

// CSVLedger appends bookings to a flat CSV file, one row per booking, header
// row first. Appends are serialized under a mutex so concurrent bookings
// cannot interleave rows.
type CSVLedger struct {
	path string
	mu   sync.Mutex
}

func NewCSVLedger(path string) *CSVLedger {
	return &CSVLedger{path: path}
}

func (l *CSVLedger) Initialize(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, err := os.Stat(l.path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat ledger %s: %w", l.path, err)
	}

	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("create ledger %s: %w", l.path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(Columns); err != nil {
		return fmt.Errorf("write ledger header: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush ledger header: %w", err)
	}
	return f.Sync()
}

func (l *CSVLedger) Append(ctx context.Context, booking domain.Booking) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open ledger %s: %w", l.path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(record(booking)); err != nil {
		return fmt.Errorf("append booking %s: %w", booking.BookingID, err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("append booking %s: %w", booking.BookingID, err)
	}
	return f.Sync()
}

var _ Ledger = (*CSVLedger)(nil)
