package timeline

import (
	"fmt"
	"sort"

	"eventbook/models"
)

// DetectConflicts sorts activities by start time (ties keep input order) and
// flags each adjacent pair where the earlier one ends after the next starts.
// Touching ranges such as [09:00,10:00) and [10:00,11:00) do not conflict.
// The result is advisory and never blocks any other operation.
func (s *DefaultScheduler) DetectConflicts(current []models.TimelineActivity) []models.Conflict {
	return DetectConflicts(current)
}

func DetectConflicts(current []models.TimelineActivity) []models.Conflict {
	conflicts := []models.Conflict{}
	if len(current) < 2 {
		return conflicts
	}
	sorted := make([]models.TimelineActivity, len(current))
	copy(sorted, current)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].StartTime < sorted[j].StartTime
	})
	for i := 1; i < len(sorted); i++ {
		prev, next := sorted[i-1], sorted[i]
		if prev.EndTime > next.StartTime {
			conflicts = append(conflicts, models.Conflict{
				ActivityA: prev.ID,
				ActivityB: next.ID,
				Message: fmt.Sprintf("%q (%s-%s) overlaps %q (%s-%s)",
					prev.Title, prev.StartTime, prev.EndTime,
					next.Title, next.StartTime, next.EndTime),
			})
		}
	}
	return conflicts
}
