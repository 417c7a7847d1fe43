package booking

import (
	"context"
	"fmt"

	"eventbook/models"

	"go.uber.org/zap"
)

// QuoteOffers prices the requested venue and package offers for one shared
// guest count.
func (s *DefaultBookingService) QuoteOffers(ctx context.Context, offerIDs []string, guestCount int) (*models.Quote, error) {
	if len(offerIDs) == 0 {
		return nil, models.NewValidationError("offerIds", "at least one offer id is required")
	}
	if guestCount < 0 {
		return nil, models.NewValidationError("guestCount", "guest count must be non-negative, got %d", guestCount)
	}

	items, err := s.Offers.GetByIDs(ctx, offerIDs)
	if err != nil {
		s.logger().Error("QuoteOffers: failed to load offers", zap.Strings("offerIds", offerIDs), zap.Error(err))
		return nil, fmt.Errorf("failed to load offers: %w", err)
	}
	return s.Pricing.Quote(items, guestCount)
}
