package email

import (
	"context"
	"fmt"

	"flightai/internal/kafka"
)

// Sender delivers booking confirmations. The current implementation only
// prints; a real SMTP sender would slot in behind the same method.
type Sender struct{}

func NewSender() *Sender {
	return &Sender{}
}

func (s *Sender) Send(ctx context.Context, event kafka.BookingEvent) error {
	fmt.Printf("send confirmation to %s: booking %s to %s on %s, code %s, %d loyalty points\n",
		event.Email, event.BookingID, event.Destination, event.Date, event.ConfirmationCode, event.LoyaltyPoints)
	return nil
}
