package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"flightai/internal/domain"
	"flightai/internal/service/booking"
	"flightai/internal/service/flights"
)

type FlightHandler struct {
	flights  flights.FlightUseCase
	bookings booking.UseCase
}

func NewFlightHandler(flightSvc flights.FlightUseCase, bookingSvc booking.UseCase) *FlightHandler {
	return &FlightHandler{flights: flightSvc, bookings: bookingSvc}
}

func (h *FlightHandler) Register(router *gin.RouterGroup) {
	router.GET("/", h.list)
	router.GET("/:city/dates", h.dates)
}

func (h *FlightHandler) list(c *gin.Context) {
	offers, err := h.flights.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, offers)
}

func (h *FlightHandler) dates(c *gin.Context) {
	dates, err := h.bookings.AvailableDates(c.Request.Context(), c.Param("city"))
	if err != nil {
		var unknown *domain.UnknownRouteError
		if errors.As(err, &unknown) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"city": c.Param("city"), "dates": dates})
}
