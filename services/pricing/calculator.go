package pricing

import (
	"errors"
	"math"

	"eventbook/models"
	"eventbook/utils"

	"github.com/go-playground/validator/v10"
)

// Calculator prices venues and package offers by guest count.
type Calculator interface {
	Cost(item models.PricedItem, guestCount int) (int64, error)
	Quote(items []models.PricedItem, guestCount int) (*models.Quote, error)
}

// TieredCalculator charges a flat base price up to the base capacity and a per
// guest rate beyond it. It never applies a discount for fewer guests.
type TieredCalculator struct{}

func NewTieredCalculator() *TieredCalculator {
	return &TieredCalculator{}
}

// Cost returns the total for one item at guestCount guests.
func (c *TieredCalculator) Cost(item models.PricedItem, guestCount int) (int64, error) {
	if guestCount < 0 {
		return 0, models.NewValidationError("guestCount", "must not be negative, got %d", guestCount)
	}
	if err := validateItem(item); err != nil {
		return 0, err
	}
	extra := extraGuests(item, guestCount)
	if extra == 0 {
		return item.BasePrice, nil
	}
	if item.ExtraGuestRate > 0 && int64(extra) > (math.MaxInt64-item.BasePrice)/item.ExtraGuestRate {
		return 0, models.NewValidationError("guestCount", "cost of %d extra guests overflows", extra)
	}
	return item.BasePrice + int64(extra)*item.ExtraGuestRate, nil
}

// Quote costs every item against the same guest count independently and sums
// the results. No capacity is shared across items.
func (c *TieredCalculator) Quote(items []models.PricedItem, guestCount int) (*models.Quote, error) {
	if guestCount < 0 {
		return nil, models.NewValidationError("guestCount", "must not be negative, got %d", guestCount)
	}
	q := &models.Quote{GuestCount: guestCount, Lines: make([]models.QuoteLine, 0, len(items))}
	for _, item := range items {
		cost, err := c.Cost(item, guestCount)
		if err != nil {
			return nil, err
		}
		if q.Total > math.MaxInt64-cost {
			return nil, models.NewValidationError("items", "quote total overflows")
		}
		q.Lines = append(q.Lines, models.QuoteLine{
			ItemID:      item.ID,
			Name:        item.Name,
			ExtraGuests: extraGuests(item, guestCount),
			Cost:        cost,
		})
		q.Total += cost
	}
	return q, nil
}

func extraGuests(item models.PricedItem, guestCount int) int {
	if guestCount <= item.BaseCapacity {
		return 0
	}
	return guestCount - item.BaseCapacity
}

func validateItem(item models.PricedItem) error {
	err := utils.Validator().Struct(item)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return models.NewValidationError(fe.Field(), "item %q: must be >= 0, got %v", item.ID, fe.Value())
	}
	return models.NewValidationError("item", "%v", err)
}
