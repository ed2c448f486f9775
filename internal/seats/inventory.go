// Package seats tracks remaining seats per (city, date, class) for a rolling
// 30-day window starting at process start. Counters are keyed by the
// month-day portion of the date only, so availability for the same calendar
// day one year apart is indistinguishable. That is inherited behavior the
// rest of the system depends on, not something to fix here.
package seats

import (
	"strings"
	"sync"
	"time"

	"flightai/internal/domain"
)

const (
	WindowDays = 30

	CapacityEconomy  = 100
	CapacityBusiness = 20
	CapacityFirst    = 10
)

// Inventory holds the in-process seat counters. Counters are only ever
// decremented during the process lifetime; they are never replenished.
type Inventory struct {
	mu        sync.RWMutex
	remaining map[string]map[string]map[domain.FareClass]int
	now       func() time.Time
}

type Option func(*Inventory)

func WithNow(now func() time.Time) Option {
	return func(inv *Inventory) {
		inv.now = now
	}
}

// New initializes counters for each city for the next WindowDays days.
func New(cities []string, opts ...Option) *Inventory {
	inv := &Inventory{
		remaining: make(map[string]map[string]map[domain.FareClass]int, len(cities)),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(inv)
	}

	start := inv.now()
	for _, city := range cities {
		days := make(map[string]map[domain.FareClass]int, WindowDays)
		for i := 0; i < WindowDays; i++ {
			key := start.AddDate(0, 0, i).Format("01-02")
			days[key] = map[domain.FareClass]int{
				domain.FareClassEconomy:  CapacityEconomy,
				domain.FareClassBusiness: CapacityBusiness,
				domain.FareClassFirst:    CapacityFirst,
			}
		}
		inv.remaining[city] = days
	}
	return inv
}

// Check returns the remaining seats for (city, date, class), using only the
// month-day portion of date. Unknown cities, malformed dates and dates
// outside the initialized window all report zero availability.
func (inv *Inventory) Check(city, date string, class domain.FareClass) int {
	key, ok := monthDay(date)
	if !ok {
		return 0
	}

	inv.mu.RLock()
	defer inv.mu.RUnlock()

	days, ok := inv.remaining[normalizeCity(city)]
	if !ok {
		return 0
	}
	classes, ok := days[key]
	if !ok {
		return 0
	}
	return classes[class]
}

// Decrement reduces the counter by n. The caller must already have verified
// n <= Check(...); no re-validation happens here.
func (inv *Inventory) Decrement(city, date string, class domain.FareClass, n int) {
	inv.add(city, date, class, -n)
}

// Restore undoes a Decrement after a failed ledger write. It is not a
// replenishment path.
func (inv *Inventory) Restore(city, date string, class domain.FareClass, n int) {
	inv.add(city, date, class, n)
}

func (inv *Inventory) add(city, date string, class domain.FareClass, delta int) {
	key, ok := monthDay(date)
	if !ok {
		return
	}

	inv.mu.Lock()
	defer inv.mu.Unlock()

	if classes, ok := inv.remaining[normalizeCity(city)][key]; ok {
		classes[class] += delta
	}
}

// AvailableDates lists the dates in the next WindowDays days from the
// current time that still have economy seats, ascending, as full YYYY-MM-DD
// strings. The list is recomputed on every call.
func (inv *Inventory) AvailableDates(city string) []string {
	inv.mu.RLock()
	defer inv.mu.RUnlock()

	days, ok := inv.remaining[normalizeCity(city)]
	if !ok {
		return nil
	}

	start := inv.now()
	dates := make([]string, 0, WindowDays)
	for i := 0; i < WindowDays; i++ {
		d := start.AddDate(0, 0, i)
		if classes, ok := days[d.Format("01-02")]; ok && classes[domain.FareClassEconomy] > 0 {
			dates = append(dates, d.Format("2006-01-02"))
		}
	}
	return dates
}

func normalizeCity(city string) string {
	return strings.ToLower(strings.TrimSpace(city))
}

// monthDay reduces a YYYY-MM-DD date to its MM-DD counter key.
func monthDay(date string) (string, bool) {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		return "", false
	}
	return d.Format("01-02"), true
}
