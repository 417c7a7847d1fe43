package handlers

import (
	"errors"
	"net/http"

	bondRepo "eventbook/database/repository/bond"
	catalogRepo "eventbook/database/repository/catalog"
	offerRepo "eventbook/database/repository/offer"
	"eventbook/models"
	"eventbook/services/booking"
	"eventbook/services/payment"
	"eventbook/services/timeline"
	"eventbook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// statusFor maps a workflow error to its HTTP status.
func statusFor(err error) int {
	var unavailable *booking.DateUnavailableError
	switch {
	case models.IsValidationError(err):
		return http.StatusBadRequest
	case errors.Is(err, booking.ErrSessionForbidden):
		return http.StatusForbidden
	case errors.Is(err, booking.ErrSessionNotFound),
		errors.Is(err, timeline.ErrActivityNotFound),
		errors.Is(err, bondRepo.ErrBondNotFound),
		errors.Is(err, catalogRepo.ErrPackageNotFound),
		errors.Is(err, offerRepo.ErrOfferNotFound):
		return http.StatusNotFound
	case errors.Is(err, timeline.ErrIllegalTransition),
		errors.Is(err, payment.ErrIllegalBondTransition),
		errors.Is(err, bondRepo.ErrStaleBond),
		errors.As(err, &unavailable):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// respondError writes err as a JSON error body. Internal errors are logged
// and their details withheld from the client.
func respondError(c *gin.Context, logger *zap.Logger, op string, err error) {
	status := statusFor(err)
	if status == http.StatusBadRequest {
		var ve *models.ValidationError
		errors.As(err, &ve)
		utils.JSONFieldError(c, status, ve.Field, ve.Message)
		return
	}
	if status == http.StatusInternalServerError {
		getLogger(c, logger).Error(op+" failed", zap.Error(err))
		utils.JSONError(c, status, op+" failed", "An unexpected error occurred. Please try again later.")
		return
	}
	utils.JSONError(c, status, http.StatusText(status), err.Error())
}

// bindError reports a malformed request body or query.
func bindError(c *gin.Context, err error) {
	utils.JSONError(c, http.StatusBadRequest, "invalid request", err.Error())
}
