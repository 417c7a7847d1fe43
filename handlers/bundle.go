package handlers

import (
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	// Availability and pricing endpoints
	GetAvailabilityHandler gin.HandlerFunc
	QuoteHandler           gin.HandlerFunc

	// Payment endpoints
	SplitPaymentHandler     gin.HandlerFunc
	CreateIntentHandler     gin.HandlerFunc
	CreateBondHandler       gin.HandlerFunc
	GetBondHandler          gin.HandlerFunc
	UpdateBondStatusHandler gin.HandlerFunc

	// Timeline session endpoints
	StartTimelineHandler      gin.HandlerFunc
	GetTimelineHandler        gin.HandlerFunc
	EndTimelineHandler        gin.HandlerFunc
	AddActivityHandler        gin.HandlerFunc
	UpdateActivityHandler     gin.HandlerFunc
	RemoveActivityHandler     gin.HandlerFunc
	ReorderActivitiesHandler  gin.HandlerFunc
	TransitionActivityHandler gin.HandlerFunc
}

// NewHandlerBundle wires every endpoint to h.
func NewHandlerBundle(h *BookingHandler) *HandlerBundle {
	return &HandlerBundle{
		GetAvailabilityHandler: h.GetAvailability,
		QuoteHandler:           h.Quote,

		SplitPaymentHandler:     h.SplitPayment,
		CreateIntentHandler:     h.CreatePaymentIntent,
		CreateBondHandler:       h.CreateBond,
		GetBondHandler:          h.GetBond,
		UpdateBondStatusHandler: h.UpdateBondStatus,

		StartTimelineHandler:      h.StartTimeline,
		GetTimelineHandler:        h.GetTimeline,
		EndTimelineHandler:        h.EndTimeline,
		AddActivityHandler:        h.AddActivity,
		UpdateActivityHandler:     h.UpdateActivity,
		RemoveActivityHandler:     h.RemoveActivity,
		ReorderActivitiesHandler:  h.ReorderActivities,
		TransitionActivityHandler: h.TransitionActivity,
	}
}
