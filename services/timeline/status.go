package timeline

import (
	"fmt"

	"eventbook/models"
)

// transitions lists the allowed next states. COMPLETED and CANCELLED have none.
var transitions = map[models.ActivityStatus][]models.ActivityStatus{
	models.StatusPending:   {models.StatusConfirmed, models.StatusCancelled},
	models.StatusConfirmed: {models.StatusPaid, models.StatusCancelled},
	models.StatusPaid:      {models.StatusCompleted},
}

// CanTransition reports whether an activity may move from one status to another.
func CanTransition(from, to models.ActivityStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

func checkTransition(from, to models.ActivityStatus) error {
	if !to.Valid() {
		return models.NewValidationError("status", "unknown status %q", to)
	}
	if !CanTransition(from, to) {
		return fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, from, to)
	}
	return nil
}

// Transition moves one activity to a new status.
func (s *DefaultScheduler) Transition(current []models.TimelineActivity, id string, to models.ActivityStatus) ([]models.TimelineActivity, error) {
	out := normalize(current)
	idx := indexOf(out, id)
	if idx < 0 {
		return nil, fmt.Errorf("%w: %s", ErrActivityNotFound, id)
	}
	if err := checkTransition(out[idx].Status, to); err != nil {
		return nil, err
	}
	out[idx].Status = to
	return out, nil
}
