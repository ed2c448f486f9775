package assistant

import (
	"context"
	"encoding/json"

	openai "github.com/sashabaranov/go-openai"
)

// toolHandler maps one tool name to a booking core operation. The gateway is
// replaceable without touching the core contract; only this table knows the
// tool names.
type toolHandler func(ctx context.Context, args json.RawMessage) (interface{}, error)

const (
	toolCheckFlight = "check_flight"
	toolBookFlight  = "book_flight"
)

func chatTools() []openai.Tool {
	return []openai.Tool{
		{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        toolCheckFlight,
				Description: "Check flight availability and price",
				Parameters: json.RawMessage(`{
					"type": "object",
					"properties": {
						"destination": {"type": "string"},
						"date": {"type": "string", "format": "date"},
						"ticket_class": {"type": "string"}
					},
					"required": ["destination", "date", "ticket_class"]
				}`),
			},
		},
		{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        toolBookFlight,
				Description: "Book a flight ticket",
				Parameters: json.RawMessage(`{
					"type": "object",
					"properties": {
						"destination": {"type": "string"},
						"date": {"type": "string", "format": "date"},
						"num_tickets": {"type": "integer"},
						"ticket_class": {"type": "string"},
						"email": {"type": "string"}
					},
					"required": ["destination", "date", "num_tickets", "ticket_class", "email"]
				}`),
			},
		},
	}
}

type checkFlightArgs struct {
	Destination string `json:"destination"`
	Date        string `json:"date"`
	TicketClass string `json:"ticket_class"`
}

type bookFlightArgs struct {
	Destination string `json:"destination"`
	Date        string `json:"date"`
	NumTickets  int    `json:"num_tickets"`
	TicketClass string `json:"ticket_class"`
	Email       string `json:"email"`
}
