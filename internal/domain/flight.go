package domain

import "strings"

type FareClass string

const (
	FareClassEconomy  FareClass = "economy"
	FareClassBusiness FareClass = "business"
	FareClassFirst    FareClass = "first"
)

// ParseFareClass is case-insensitive; ok is false for anything outside the
// three known classes.
func ParseFareClass(s string) (FareClass, bool) {
	switch FareClass(strings.ToLower(strings.TrimSpace(s))) {
	case FareClassEconomy:
		return FareClassEconomy, true
	case FareClassBusiness:
		return FareClassBusiness, true
	case FareClassFirst:
		return FareClassFirst, true
	}
	return "", false
}

// RouteOffer is one bookable (destination, class) pair with its fixed price
// and route metadata. Offers are immutable after process start.
type RouteOffer struct {
	Destination       string    `json:"destination"`
	Class             FareClass `json:"class"`
	Price             int       `json:"price"`
	Currency          string    `json:"currency"`
	Airline           string    `json:"airline"`
	Duration          string    `json:"duration"`
	Baggage           string    `json:"baggage"`
	Stops             string    `json:"stops"`
	DepartureAirports []string  `json:"departure_airports"`
	ArrivalAirports   []string  `json:"arrival_airports"`
}

// Quote is the read-only answer to a "check flight" query. LoyaltyPoints is
// what a single ticket would earn if booked.
type Quote struct {
	Destination   string    `json:"destination"`
	Date          string    `json:"date"`
	Class         FareClass `json:"class"`
	Price         int       `json:"price"`
	Availability  int       `json:"availability"`
	LoyaltyPoints int       `json:"loyalty_points"`
}
