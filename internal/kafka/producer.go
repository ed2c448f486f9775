package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
)

// BookingEvent is published on every confirmed booking and consumed by the
// notifications worker.
type BookingEvent struct {
	Type             string `json:"type"`
	BookingID        string `json:"booking_id"`
	ConfirmationCode string `json:"confirmation_code"`
	Email            string `json:"email"`
	Destination      string `json:"destination"`
	Date             string `json:"date"`
	NumTickets       int    `json:"num_tickets"`
	TicketClass      string `json:"ticket_class"`
	TotalPrice       int    `json:"total_price"`
	LoyaltyPoints    int    `json:"loyalty_points"`
	BookedAt         string `json:"booked_at"`
}

type Producer struct {
	writer *kafka.Writer
}

func NewProducer(brokers []string) *Producer {
	return &Producer{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Balancer:     &kafka.LeastBytes{},
			BatchTimeout: 50 * time.Millisecond,
			RequiredAcks: kafka.RequireOne,
		},
	}
}

func (p *Producer) Publish(ctx context.Context, topic, key string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: data,
		Time:  time.Now(),
	})
	if err != nil {
		return fmt.Errorf("failed to write message to Kafka: %w", err)
	}
	return nil
}

func (p *Producer) Close() error {
	if p.writer != nil {
		return p.writer.Close()
	}
	return nil
}
