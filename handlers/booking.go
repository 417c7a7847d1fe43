package handlers

import (
	"net/http"

	"eventbook/middleware"
	"eventbook/models"
	"eventbook/services/booking"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler serves the availability, pricing, payment and timeline
// endpoints over a BookingService.
type BookingHandler struct {
	Svc    booking.BookingService
	Logger *zap.Logger
}

func NewBookingHandler(svc booking.BookingService, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{Svc: svc, Logger: logger}
}

func userID(c *gin.Context) string {
	return c.GetString(middleware.UserIDKey)
}

// GetAvailability handles GET /api/availability?start=&end=.
func (h *BookingHandler) GetAvailability(c *gin.Context) {
	var q struct {
		Start string `form:"start" binding:"required"`
		End   string `form:"end" binding:"required"`
	}
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, err)
		return
	}
	start, err := models.ParseDate(q.Start)
	if err != nil {
		respondError(c, h.Logger, "GetAvailability", models.NewValidationError("start", "%v", err))
		return
	}
	end, err := models.ParseDate(q.End)
	if err != nil {
		respondError(c, h.Logger, "GetAvailability", models.NewValidationError("end", "%v", err))
		return
	}

	result, err := h.Svc.ClassifyRange(c.Request.Context(), start, end)
	if err != nil {
		respondError(c, h.Logger, "GetAvailability", err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Quote handles POST /api/pricing/quote.
func (h *BookingHandler) Quote(c *gin.Context) {
	var body struct {
		GuestCount int      `json:"guestCount"`
		OfferIDs   []string `json:"offerIds" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		bindError(c, err)
		return
	}
	quote, err := h.Svc.QuoteOffers(c.Request.Context(), body.OfferIDs, body.GuestCount)
	if err != nil {
		respondError(c, h.Logger, "Quote", err)
		return
	}
	c.JSON(http.StatusOK, quote)
}
