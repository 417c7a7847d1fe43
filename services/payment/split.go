package payment

import (
	"math"

	"eventbook/models"
)

// MaxTotal is the largest total that can be split without overflow.
const MaxTotal = math.MaxInt64 / 100

// Split divides total into a down payment and a balance under policy. Only the
// down payment is rounded (half up, to whole currency units); the balance is
// always total minus down payment, so the two always add up to total.
func Split(total int64, policy models.Policy) (models.PaymentSplit, error) {
	if total < 0 {
		return models.PaymentSplit{}, models.NewValidationError("total", "must not be negative, got %d", total)
	}
	if total > MaxTotal {
		return models.PaymentSplit{}, models.NewValidationError("total", "exceeds %d", int64(MaxTotal))
	}

	var down int64
	switch policy.Kind {
	case models.PolicyFull:
		down = total
	case models.PolicyHalf:
		down = percentOf(total, 50)
	case models.PolicyCustom:
		if policy.Percentage < 1 || policy.Percentage > 100 {
			return models.PaymentSplit{}, models.NewValidationError("policy.percentage", "must be within [1, 100], got %d", policy.Percentage)
		}
		down = percentOf(total, policy.Percentage)
	default:
		return models.PaymentSplit{}, models.NewValidationError("policy.kind", "unknown split policy %q", policy.Kind)
	}

	return models.PaymentSplit{
		Total:       total,
		Policy:      policy,
		DownPayment: down,
		Balance:     total - down,
	}, nil
}

// percentOf rounds total*pct/100 half up using integer math only.
func percentOf(total int64, pct int) int64 {
	return (total*int64(pct) + 50) / 100
}
