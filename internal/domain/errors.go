package domain

import "fmt"

// Booking failures are typed so callers can tell which pipeline stage
// rejected the request and render a useful message.

type InvalidDateError struct {
	Date string
}

func (e *InvalidDateError) Error() string {
	return fmt.Sprintf("invalid date %q: must be a calendar date within the next 365 days", e.Date)
}

type InvalidEmailError struct {
	Email string
}

func (e *InvalidEmailError) Error() string {
	return fmt.Sprintf("invalid email address %q", e.Email)
}

type UnknownRouteError struct {
	Destination string
	Class       string
}

func (e *UnknownRouteError) Error() string {
	return fmt.Sprintf("no fare for destination %q in class %q", e.Destination, e.Class)
}

type InsufficientSeatsError struct {
	Destination string
	Date        string
	Class       FareClass
	Requested   int
	Available   int
}

func (e *InsufficientSeatsError) Error() string {
	return fmt.Sprintf("not enough %s seats to %s on %s: requested %d, available %d",
		e.Class, e.Destination, e.Date, e.Requested, e.Available)
}
