package domain

import "time"

// Preferences are free-form extras attached to a booking. They ride along
// into the ledger as plain text columns.
type Preferences struct {
	Seats             string `json:"seat_preferences,omitempty"`
	Meals             string `json:"meal_preferences,omitempty"`
	MedicalAssistance string `json:"medical_assistance,omitempty"`
	SpecialRequests   string `json:"special_requests,omitempty"`
}

// Booking is a confirmed purchase. It is created exactly once per successful
// booking and never mutated afterwards.
type Booking struct {
	BookingID        string      `json:"booking_id"`
	ConfirmationCode string      `json:"confirmation_code"`
	Email            string      `json:"email"`
	Destination      string      `json:"destination"`
	Date             string      `json:"date"`
	NumTickets       int         `json:"num_tickets"`
	Class            FareClass   `json:"ticket_class"`
	TotalPrice       int         `json:"total_price"`
	LoyaltyPoints    int         `json:"loyalty_points"`
	Preferences      Preferences `json:"preferences"`
	CreatedAt        time.Time   `json:"created_at"`
}
