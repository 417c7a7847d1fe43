package handlers

import (
	"net/http"

	"eventbook/models"
	"eventbook/services/booking"
	"eventbook/services/payment"

	"github.com/gin-gonic/gin"
)

// SplitPayment handles POST /api/payments/split.
func (h *BookingHandler) SplitPayment(c *gin.Context) {
	var body struct {
		Total  int64         `json:"total"`
		Policy models.Policy `json:"policy"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		bindError(c, err)
		return
	}
	split, err := h.Svc.SplitPayment(body.Total, body.Policy)
	if err != nil {
		respondError(c, h.Logger, "SplitPayment", err)
		return
	}
	c.JSON(http.StatusOK, split)
}

// CreatePaymentIntent handles POST /api/payments/intent.
func (h *BookingHandler) CreatePaymentIntent(c *gin.Context) {
	var req booking.DownPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	req.UserID = userID(c)

	result, err := h.Svc.StartDownPayment(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.Logger, "CreatePaymentIntent", err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

// CreateBond handles POST /api/payments/bonds.
func (h *BookingHandler) CreateBond(c *gin.Context) {
	var body struct {
		BookingRef string `json:"bookingRef" binding:"required"`
		Amount     int64  `json:"amount"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		bindError(c, err)
		return
	}
	bond, err := h.Svc.CreateBond(c.Request.Context(), body.BookingRef, body.Amount)
	if err != nil {
		respondError(c, h.Logger, "CreateBond", err)
		return
	}
	c.JSON(http.StatusCreated, bond)
}

// GetBond handles GET /api/payments/bonds/:id.
func (h *BookingHandler) GetBond(c *gin.Context) {
	bond, err := h.Svc.GetBond(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.Logger, "GetBond", err)
		return
	}
	c.JSON(http.StatusOK, bond)
}

// UpdateBondStatus handles PUT /api/payments/bonds/:id/status.
func (h *BookingHandler) UpdateBondStatus(c *gin.Context) {
	var body struct {
		Status            models.BondStatus `json:"status" binding:"required,oneof=PAID REFUNDED CLAIMED"`
		DamageAmount      int64             `json:"damageAmount"`
		DamageDescription string            `json:"damageDescription"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		bindError(c, err)
		return
	}
	var claim *payment.Claim
	if body.Status == models.BondClaimed {
		claim = &payment.Claim{DamageAmount: body.DamageAmount, DamageDescription: body.DamageDescription}
	}

	bond, err := h.Svc.TransitionBond(c.Request.Context(), c.Param("id"), body.Status, claim)
	if err != nil {
		respondError(c, h.Logger, "UpdateBondStatus", err)
		return
	}
	c.JSON(http.StatusOK, bond)
}
