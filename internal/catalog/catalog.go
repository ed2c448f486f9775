package catalog

import (
	"sort"
	"strings"
	"time"

	"flightai/internal/domain"
)

// Catalog is the static fare table: destination city -> fare class -> price.
// All lookups are case-insensitive on both keys.
type Catalog struct {
	prices map[string]map[domain.FareClass]int
	meta   map[string]routeMeta
	now    func() time.Time
}

type routeMeta struct {
	airline           string
	duration          string
	currency          string
	stops             string
	departureAirports []string
	arrivalAirports   []string
}

var baggageByClass = map[domain.FareClass]string{
	domain.FareClassEconomy:  "1 x 23kg checked",
	domain.FareClassBusiness: "2 x 32kg checked",
	domain.FareClassFirst:    "3 x 32kg checked",
}

type Option func(*Catalog)

func WithNow(now func() time.Time) Option {
	return func(c *Catalog) {
		c.now = now
	}
}

func New(opts ...Option) *Catalog {
	c := &Catalog{
		prices: map[string]map[domain.FareClass]int{
			"london": {domain.FareClassEconomy: 799, domain.FareClassBusiness: 2399, domain.FareClassFirst: 4999},
			"paris":  {domain.FareClassEconomy: 899, domain.FareClassBusiness: 2699, domain.FareClassFirst: 5399},
			"tokyo":  {domain.FareClassEconomy: 1400, domain.FareClassBusiness: 4200, domain.FareClassFirst: 8400},
			"berlin": {domain.FareClassEconomy: 499, domain.FareClassBusiness: 1499, domain.FareClassFirst: 2999},
		},
		meta: map[string]routeMeta{
			"london": {airline: "FlightAI", duration: "7h10m", currency: "USD", stops: "non-stop",
				departureAirports: []string{"JFK", "EWR"}, arrivalAirports: []string{"LHR", "LGW"}},
			"paris": {airline: "FlightAI", duration: "7h35m", currency: "USD", stops: "non-stop",
				departureAirports: []string{"JFK"}, arrivalAirports: []string{"CDG", "ORY"}},
			"tokyo": {airline: "FlightAI", duration: "14h05m", currency: "USD", stops: "1 stop",
				departureAirports: []string{"JFK", "EWR"}, arrivalAirports: []string{"NRT", "HND"}},
			"berlin": {airline: "FlightAI", duration: "8h20m", currency: "USD", stops: "non-stop",
				departureAirports: []string{"EWR"}, arrivalAirports: []string{"BER"}},
		},
		now: time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Price returns the fare for (city, class), or ok=false when either is
// unknown.
func (c *Catalog) Price(city string, class domain.FareClass) (int, bool) {
	fares, ok := c.prices[strings.ToLower(strings.TrimSpace(city))]
	if !ok {
		return 0, false
	}
	price, ok := fares[class]
	return price, ok
}

// Destinations lists the served cities in alphabetical order.
func (c *Catalog) Destinations() []string {
	cities := make([]string, 0, len(c.prices))
	for city := range c.prices {
		cities = append(cities, city)
	}
	sort.Strings(cities)
	return cities
}

// Offers flattens the fare table into one RouteOffer per (city, class).
func (c *Catalog) Offers() []domain.RouteOffer {
	classes := []domain.FareClass{domain.FareClassEconomy, domain.FareClassBusiness, domain.FareClassFirst}
	offers := make([]domain.RouteOffer, 0, len(c.prices)*len(classes))
	for _, city := range c.Destinations() {
		m := c.meta[city]
		for _, class := range classes {
			offers = append(offers, domain.RouteOffer{
				Destination:       city,
				Class:             class,
				Price:             c.prices[city][class],
				Currency:          m.currency,
				Airline:           m.airline,
				Duration:          m.duration,
				Baggage:           baggageByClass[class],
				Stops:             m.stops,
				DepartureAirports: m.departureAirports,
				ArrivalAirports:   m.arrivalAirports,
			})
		}
	}
	return offers
}

// IsValidDate reports whether date is a well-formed YYYY-MM-DD calendar date
// between today and one year from today, inclusive. Malformed input is
// invalid, not an error.
func (c *Catalog) IsValidDate(date string) bool {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		return false
	}
	now := c.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return !d.Before(today) && !d.After(today.AddDate(0, 0, 365))
}
