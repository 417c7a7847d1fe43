package payment

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"eventbook/models"
)

// ErrIllegalBondTransition is returned when a bond cannot move to the requested
// status.
var ErrIllegalBondTransition = errors.New("illegal cash bond transition")

var bondTransitions = map[models.BondStatus][]models.BondStatus{
	models.BondPending: {models.BondPaid},
	models.BondPaid:    {models.BondRefunded, models.BondClaimed},
}

// Claim carries the damage details a CLAIMED bond must record.
type Claim struct {
	DamageAmount      int64  `json:"damageAmount"`
	DamageDescription string `json:"damageDescription"`
}

// NewCashBond returns a PENDING bond.
func NewCashBond(id, bookingRef string, amount int64, now time.Time) (models.CashBond, error) {
	if strings.TrimSpace(bookingRef) == "" {
		return models.CashBond{}, models.NewValidationError("bookingRef", "is required")
	}
	if amount < 0 {
		return models.CashBond{}, models.NewValidationError("amount", "must not be negative, got %d", amount)
	}
	return models.CashBond{
		ID:         id,
		BookingRef: bookingRef,
		Amount:     amount,
		Status:     models.BondPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

// TransitionBond moves a bond along PENDING -> PAID -> (REFUNDED | CLAIMED).
// claim is required when moving to CLAIMED and ignored otherwise. The input
// bond is not modified.
func TransitionBond(bond models.CashBond, to models.BondStatus, claim *Claim, now time.Time) (models.CashBond, error) {
	allowed := false
	for _, next := range bondTransitions[bond.Status] {
		if next == to {
			allowed = true
			break
		}
	}
	if !allowed {
		return bond, fmt.Errorf("%w: %s -> %s", ErrIllegalBondTransition, bond.Status, to)
	}

	if to == models.BondClaimed {
		if claim == nil {
			return bond, models.NewValidationError("damageAmount", "a claim requires damage details")
		}
		if claim.DamageAmount < 0 {
			return bond, models.NewValidationError("damageAmount", "must not be negative, got %d", claim.DamageAmount)
		}
		if strings.TrimSpace(claim.DamageDescription) == "" {
			return bond, models.NewValidationError("damageDescription", "is required for a claim")
		}
		bond.DamageAmount = claim.DamageAmount
		bond.DamageDescription = strings.TrimSpace(claim.DamageDescription)
	}

	bond.Status = to
	bond.UpdatedAt = now
	return bond, nil
}
