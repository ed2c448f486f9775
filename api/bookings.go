package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"flightai/internal/domain"
	"flightai/internal/service/booking"
)

type BookingHandler struct {
	service booking.UseCase
}

type createBookingRequest struct {
	Destination string `json:"destination" binding:"required"`
	Date        string `json:"date" binding:"required"`
	NumTickets  int    `json:"num_tickets" binding:"required,gt=0"`
	TicketClass string `json:"ticket_class" binding:"required"`
	Email       string `json:"email" binding:"required"`

	SeatPreferences   string `json:"seat_preferences"`
	MealPreferences   string `json:"meal_preferences"`
	MedicalAssistance string `json:"medical_assistance"`
	SpecialRequests   string `json:"special_requests"`
}

type bookingResponse struct {
	BookingID        string `json:"booking_id"`
	ConfirmationCode string `json:"confirmation_code"`
	Email            string `json:"email"`
	Destination      string `json:"destination"`
	Date             string `json:"date"`
	NumTickets       int    `json:"num_tickets"`
	TicketClass      string `json:"ticket_class"`
	TotalPrice       int    `json:"total_price"`
	LoyaltyPoints    int    `json:"loyalty_points"`
	BookingTime      string `json:"booking_time"`
}

func NewBookingHandler(service booking.UseCase) *BookingHandler {
	return &BookingHandler{service: service}
}

func (h *BookingHandler) Register(router *gin.RouterGroup) {
	router.POST("/", h.create)
	router.GET("/quote", h.quote)
}

func (h *BookingHandler) create(c *gin.Context) {
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	b, err := h.service.Book(c.Request.Context(), booking.BookInput{
		Destination: req.Destination,
		Date:        req.Date,
		NumTickets:  req.NumTickets,
		Class:       req.TicketClass,
		Email:       req.Email,
		Preferences: domain.Preferences{
			Seats:             req.SeatPreferences,
			Meals:             req.MealPreferences,
			MedicalAssistance: req.MedicalAssistance,
			SpecialRequests:   req.SpecialRequests,
		},
	})
	if err != nil {
		c.JSON(bookingErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, bookingResponse{
		BookingID:        b.BookingID,
		ConfirmationCode: b.ConfirmationCode,
		Email:            b.Email,
		Destination:      b.Destination,
		Date:             b.Date,
		NumTickets:       b.NumTickets,
		TicketClass:      string(b.Class),
		TotalPrice:       b.TotalPrice,
		LoyaltyPoints:    b.LoyaltyPoints,
		BookingTime:      b.CreatedAt.Format(time.RFC3339),
	})
}

func (h *BookingHandler) quote(c *gin.Context) {
	destination := c.Query("destination")
	date := c.Query("date")
	class := c.Query("ticket_class")
	if destination == "" || class == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "destination and ticket_class are required"})
		return
	}

	quote, err := h.service.Quote(c.Request.Context(), destination, date, class)
	if err != nil {
		c.JSON(bookingErrorStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, quote)
}

func bookingErrorStatus(err error) int {
	var (
		invalidDate  *domain.InvalidDateError
		invalidEmail *domain.InvalidEmailError
		unknownRoute *domain.UnknownRouteError
		noSeats      *domain.InsufficientSeatsError
	)
	switch {
	case errors.As(err, &unknownRoute):
		return http.StatusNotFound
	case errors.As(err, &noSeats):
		return http.StatusConflict
	case errors.As(err, &invalidDate), errors.As(err, &invalidEmail):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
