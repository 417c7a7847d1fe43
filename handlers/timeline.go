package handlers

import (
	"errors"
	"io"
	"net/http"

	"eventbook/models"

	"github.com/gin-gonic/gin"
)

// StartTimeline handles POST /api/timeline/sessions.
func (h *BookingHandler) StartTimeline(c *gin.Context) {
	var body struct {
		PackageID string      `json:"packageId" binding:"required"`
		EventDate models.Date `json:"eventDate"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		bindError(c, err)
		return
	}
	view, err := h.Svc.StartTimeline(c.Request.Context(), userID(c), body.PackageID, body.EventDate)
	if err != nil {
		respondError(c, h.Logger, "StartTimeline", err)
		return
	}
	c.JSON(http.StatusCreated, view)
}

// GetTimeline handles GET /api/timeline/sessions/:id.
func (h *BookingHandler) GetTimeline(c *gin.Context) {
	view, err := h.Svc.GetTimeline(c.Request.Context(), userID(c), c.Param("id"))
	if err != nil {
		respondError(c, h.Logger, "GetTimeline", err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// EndTimeline handles DELETE /api/timeline/sessions/:id.
func (h *BookingHandler) EndTimeline(c *gin.Context) {
	if err := h.Svc.EndTimeline(c.Request.Context(), userID(c), c.Param("id")); err != nil {
		respondError(c, h.Logger, "EndTimeline", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// AddActivity handles POST /api/timeline/sessions/:id/activities.
func (h *BookingHandler) AddActivity(c *gin.Context) {
	var body struct {
		AfterActivityID string `json:"afterActivityId"`
	}
	// An empty body appends to the end. Chunked bodies have an unknown
	// length, so emptiness is detected from the decoder.
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&body); err != nil && !errors.Is(err, io.EOF) {
			bindError(c, err)
			return
		}
	}
	view, err := h.Svc.AddActivity(c.Request.Context(), userID(c), c.Param("id"), body.AfterActivityID)
	if err != nil {
		respondError(c, h.Logger, "AddActivity", err)
		return
	}
	c.JSON(http.StatusCreated, view)
}

// UpdateActivity handles PATCH /api/timeline/sessions/:id/activities/:activityId.
func (h *BookingHandler) UpdateActivity(c *gin.Context) {
	var patch models.ActivityPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		bindError(c, err)
		return
	}
	view, err := h.Svc.UpdateActivity(c.Request.Context(), userID(c), c.Param("id"), c.Param("activityId"), patch)
	if err != nil {
		respondError(c, h.Logger, "UpdateActivity", err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// RemoveActivity handles DELETE /api/timeline/sessions/:id/activities/:activityId.
func (h *BookingHandler) RemoveActivity(c *gin.Context) {
	view, err := h.Svc.RemoveActivity(c.Request.Context(), userID(c), c.Param("id"), c.Param("activityId"))
	if err != nil {
		respondError(c, h.Logger, "RemoveActivity", err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// ReorderActivities handles PUT /api/timeline/sessions/:id/reorder.
func (h *BookingHandler) ReorderActivities(c *gin.Context) {
	var body struct {
		From *int `json:"from" binding:"required"`
		To   *int `json:"to" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		bindError(c, err)
		return
	}
	view, err := h.Svc.ReorderActivities(c.Request.Context(), userID(c), c.Param("id"), *body.From, *body.To)
	if err != nil {
		respondError(c, h.Logger, "ReorderActivities", err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// TransitionActivity handles PUT /api/timeline/sessions/:id/activities/:activityId/status.
func (h *BookingHandler) TransitionActivity(c *gin.Context) {
	var body struct {
		Status models.ActivityStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		bindError(c, err)
		return
	}
	view, err := h.Svc.TransitionActivity(c.Request.Context(), userID(c), c.Param("id"), c.Param("activityId"), body.Status)
	if err != nil {
		respondError(c, h.Logger, "TransitionActivity", err)
		return
	}
	c.JSON(http.StatusOK, view)
}
