package booking

import (
	"context"
	"fmt"

	"eventbook/models"
	"eventbook/services/availability"

	"go.uber.org/zap"
)

// ClassifyRange loads the events dated inside the range and classifies them.
func (s *DefaultBookingService) ClassifyRange(ctx context.Context, start, end models.Date) (*models.Classification, error) {
	// Reject oversized ranges before they reach the store.
	if err := availability.ValidateRange(start, end); err != nil {
		return nil, err
	}

	events, err := s.Events.GetByDateRange(ctx, start, end)
	if err != nil {
		s.logger().Error("ClassifyRange: failed to load events",
			zap.String("start", start.String()), zap.String("end", end.String()), zap.Error(err))
		return nil, fmt.Errorf("failed to load events: %w", err)
	}

	result, err := s.Classifier.Classify(events, start, end)
	if err != nil {
		return nil, err
	}
	if len(result.Warnings) > 0 {
		s.logger().Warn("ClassifyRange: skipped malformed events",
			zap.Int("count", len(result.Warnings)))
	}
	return result, nil
}

// checkDateBookable classifies the single day d and rejects it when it falls
// inside the lead window or carries an exclusive event.
func (s *DefaultBookingService) checkDateBookable(ctx context.Context, d models.Date) error {
	if d.IsZero() {
		return models.NewValidationError("eventDate", "event date is required")
	}
	result, err := s.ClassifyRange(ctx, d, d)
	if err != nil {
		return err
	}
	day, _ := result.Day(d)
	switch {
	case !day.Selectable:
		return &DateUnavailableError{
			Date:   d.String(),
			Reason: fmt.Sprintf("earliest bookable date is %s", result.MinimumBookableDate),
		}
	case day.HasExclusiveEvent:
		return &DateUnavailableError{Date: d.String(), Reason: "an exclusive event is already booked"}
	}
	return nil
}
