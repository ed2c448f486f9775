// Package assistant is the conversational front door: it forwards chat turns
// to an OpenAI-compatible model and dispatches the model's tool calls to the
// booking core. It owns all prompt construction; the core never sees natural
// language.
package assistant

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"flightai/internal/domain"
	"flightai/internal/service/booking"
)

const systemMessage = `You are FlightAI's assistant. Provide concise, accurate responses.
Available destinations: London, Paris, Tokyo, Berlin
Classes: Economy, Business, First
Features: Loyalty points (10% of price), Seat availability check, Email confirmations`

type ChatUseCase interface {
	Chat(ctx context.Context, sessionID, message string) (reply, session string, err error)
}

// BookingCore is the fixed contract the gateway calls into.
type BookingCore interface {
	Quote(ctx context.Context, destination, date, class string) (*domain.Quote, error)
	Book(ctx context.Context, input booking.BookInput) (*domain.Booking, error)
}

type completionClient interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

type Assistant struct {
	client   completionClient
	model    string
	core     BookingCore
	log      *zap.Logger
	handlers map[string]toolHandler

	mu       sync.Mutex
	sessions map[string][]openai.ChatCompletionMessage
}

func New(apiKey, model string, core BookingCore, log *zap.Logger) *Assistant {
	return newWithClient(openai.NewClient(apiKey), model, core, log)
}

func newWithClient(client completionClient, model string, core BookingCore, log *zap.Logger) *Assistant {
	a := &Assistant{
		client:   client,
		model:    model,
		core:     core,
		log:      log,
		sessions: make(map[string][]openai.ChatCompletionMessage),
	}
	a.handlers = map[string]toolHandler{
		toolCheckFlight: a.checkFlight,
		toolBookFlight:  a.bookFlight,
	}
	return a
}

// Chat handles one user turn. A blank sessionID starts a new conversation;
// the returned session identifies it for follow-up turns.
func (a *Assistant) Chat(ctx context.Context, sessionID, message string) (string, string, error) {
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	messages := []openai.ChatCompletionMessage{{Role: openai.ChatMessageRoleSystem, Content: systemMessage}}
	messages = append(messages, a.history(sessionID)...)
	messages = append(messages, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: message})

	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    a.model,
		Messages: messages,
		Tools:    chatTools(),
	})
	if err != nil {
		return "", sessionID, fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", sessionID, errors.New("chat completion returned no choices")
	}

	choice := resp.Choices[0]
	if choice.FinishReason == openai.FinishReasonToolCalls {
		messages = append(messages, choice.Message)
		for _, call := range choice.Message.ToolCalls {
			messages = append(messages, a.handleToolCall(ctx, call))
		}

		resp, err = a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model:    a.model,
			Messages: messages,
		})
		if err != nil {
			return "", sessionID, fmt.Errorf("chat completion after tool call: %w", err)
		}
		if len(resp.Choices) == 0 {
			return "", sessionID, errors.New("chat completion returned no choices")
		}
		choice = resp.Choices[0]
	}

	a.remember(sessionID,
		openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: message},
		openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: choice.Message.Content},
	)
	return choice.Message.Content, sessionID, nil
}

// handleToolCall dispatches one tool invocation and renders the result (or
// the failure) as the tool message the model expects. Core errors go back to
// the model as {"error": ...} so it can explain the rejection to the user.
func (a *Assistant) handleToolCall(ctx context.Context, call openai.ToolCall) openai.ChatCompletionMessage {
	var payload interface{}

	handler, ok := a.handlers[call.Function.Name]
	if !ok {
		payload = map[string]string{"error": fmt.Sprintf("unknown tool %q", call.Function.Name)}
	} else if result, err := handler(ctx, json.RawMessage(call.Function.Arguments)); err != nil {
		a.log.Warn("tool call rejected", zap.String("tool", call.Function.Name), zap.Error(err))
		payload = map[string]string{"error": err.Error()}
	} else {
		payload = result
	}

	content, err := json.Marshal(payload)
	if err != nil {
		content = []byte(`{"error": "internal error"}`)
	}
	return openai.ChatCompletionMessage{
		Role:       openai.ChatMessageRoleTool,
		Content:    string(content),
		ToolCallID: call.ID,
	}
}

func (a *Assistant) checkFlight(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var in checkFlightArgs
	if err := json.Unmarshal(args, &in); err != nil {
		return nil, fmt.Errorf("bad check_flight arguments: %w", err)
	}
	quote, err := a.core.Quote(ctx, in.Destination, in.Date, in.TicketClass)
	if err != nil {
		return nil, err
	}
	return map[string]int{
		"availability":   quote.Availability,
		"price":          quote.Price,
		"loyalty_points": quote.LoyaltyPoints,
	}, nil
}

func (a *Assistant) bookFlight(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var in bookFlightArgs
	if err := json.Unmarshal(args, &in); err != nil {
		return nil, fmt.Errorf("bad book_flight arguments: %w", err)
	}
	b, err := a.core.Book(ctx, booking.BookInput{
		Destination: in.Destination,
		Date:        in.Date,
		NumTickets:  in.NumTickets,
		Class:       in.TicketClass,
		Email:       in.Email,
	})
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"booking_id":        b.BookingID,
		"confirmation_code": b.ConfirmationCode,
		"total_price":       b.TotalPrice,
		"loyalty_points":    b.LoyaltyPoints,
	}, nil
}

func (a *Assistant) history(sessionID string) []openai.ChatCompletionMessage {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.sessions[sessionID]
}

func (a *Assistant) remember(sessionID string, turns ...openai.ChatCompletionMessage) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.sessions[sessionID] = append(a.sessions[sessionID], turns...)
}

var _ ChatUseCase = (*Assistant)(nil)
