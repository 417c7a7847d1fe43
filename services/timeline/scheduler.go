package timeline

import (
	"fmt"
	"sort"

	"eventbook/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Defaults for seeding and appending activities.
const (
	DefaultDayStart       = models.TimeOfDay(8 * 60)
	DefaultStepMinutes    = 120
	DefaultDurationMinute = 60
	DefaultGapMinutes     = 15
)

// Options configures a scheduler. Zero values fall back to the defaults.
type Options struct {
	DayStart        models.TimeOfDay
	StepMinutes     int
	DurationMinutes int
	GapMinutes      int
	NewID           func() string
}

// Scheduler orders and edits a day-of-event timeline. Every method takes the
// caller's current list and returns a new one; inputs are never mutated, and
// a failed call leaves the caller's list as it was.
type Scheduler interface {
	Initialize(components []models.CatalogComponent, eventDate models.Date) ([]models.TimelineActivity, []models.Warning, error)
	Add(current []models.TimelineActivity, eventDate models.Date, afterActivityID string) ([]models.TimelineActivity, error)
	Update(current []models.TimelineActivity, id string, patch models.ActivityPatch) ([]models.TimelineActivity, error)
	Remove(current []models.TimelineActivity, id string) ([]models.TimelineActivity, error)
	Reorder(current []models.TimelineActivity, fromIndex, toIndex int) ([]models.TimelineActivity, error)
	Transition(current []models.TimelineActivity, id string, to models.ActivityStatus) ([]models.TimelineActivity, error)
	DetectConflicts(current []models.TimelineActivity) []models.Conflict
}

// DefaultScheduler holds configuration only and is safe for concurrent use.
type DefaultScheduler struct {
	opts   Options
	logger *zap.Logger
}

func NewScheduler(opts Options, logger *zap.Logger) *DefaultScheduler {
	if opts.DayStart == 0 {
		opts.DayStart = DefaultDayStart
	}
	if opts.StepMinutes <= 0 {
		opts.StepMinutes = DefaultStepMinutes
	}
	if opts.DurationMinutes <= 0 {
		opts.DurationMinutes = DefaultDurationMinute
	}
	if opts.GapMinutes <= 0 {
		opts.GapMinutes = DefaultGapMinutes
	}
	if opts.NewID == nil {
		opts.NewID = uuid.NewString
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultScheduler{opts: opts, logger: logger}
}

type componentKey struct {
	id       string
	category string
}

// Initialize seeds a timeline from a package's components in catalog order.
// Components repeated under the same (id, category) pair yield one activity.
// Activity i starts at DayStart + i*Step and lasts the default duration.
func (s *DefaultScheduler) Initialize(components []models.CatalogComponent, eventDate models.Date) ([]models.TimelineActivity, []models.Warning, error) {
	if eventDate.IsZero() {
		return nil, nil, models.NewValidationError("eventDate", "is required")
	}

	var warnings []models.Warning
	seen := make(map[componentKey]struct{}, len(components))
	activities := make([]models.TimelineActivity, 0, len(components))

	for i, comp := range components {
		if comp.ID == "" {
			warnings = append(warnings, models.Warning{
				Code:    models.WarningMissingComponentID,
				Ref:     fmt.Sprintf("index:%d", i),
				Message: fmt.Sprintf("component %q has no id", comp.Name),
			})
			s.logger.Warn("Initialize: skipping component without id", zap.Int("index", i), zap.String("name", comp.Name))
			continue
		}
		key := componentKey{id: comp.ID, category: comp.Category}
		if _, dup := seen[key]; dup {
			warnings = append(warnings, models.Warning{
				Code:    models.WarningDuplicateComponent,
				Ref:     comp.ID,
				Message: fmt.Sprintf("component %q in category %q listed more than once", comp.ID, comp.Category),
			})
			s.logger.Warn("Initialize: dropping duplicate component",
				zap.String("componentID", comp.ID), zap.String("category", comp.Category))
			continue
		}
		seen[key] = struct{}{}

		n := len(activities)
		start := s.opts.DayStart.Add(n * s.opts.StepMinutes)
		end := start.Add(s.opts.DurationMinutes)
		if !end.Valid() {
			return nil, nil, models.NewValidationError("components",
				"%d components do not fit in one day starting at %s", n+1, s.opts.DayStart)
		}
		activities = append(activities, models.TimelineActivity{
			ID:                s.opts.NewID(),
			SourceComponentID: comp.ID,
			Category:          comp.Category,
			Title:             comp.Name,
			Date:              eventDate,
			StartTime:         start,
			EndTime:           end,
			Status:            models.StatusPending,
			Order:             n,
		})
	}
	return activities, warnings, nil
}

// Add inserts a blank activity starting GapMinutes after the latest end time
// (or at DayStart on an empty list). It goes right after afterActivityID when
// given, otherwise at the end.
func (s *DefaultScheduler) Add(current []models.TimelineActivity, eventDate models.Date, afterActivityID string) ([]models.TimelineActivity, error) {
	out := normalize(current)
	if eventDate.IsZero() && len(out) > 0 {
		eventDate = out[0].Date
	}
	if eventDate.IsZero() {
		return nil, models.NewValidationError("eventDate", "is required")
	}

	start := s.opts.DayStart
	if len(out) > 0 {
		latest := out[0].EndTime
		for _, a := range out[1:] {
			if a.EndTime > latest {
				latest = a.EndTime
			}
		}
		start = latest.Add(s.opts.GapMinutes)
	}
	end := start.Add(s.opts.DurationMinutes)
	if !end.Valid() {
		return nil, models.NewValidationError("startTime", "no room left in the day after %s", start.Add(-s.opts.GapMinutes))
	}

	pos := len(out)
	if afterActivityID != "" {
		idx := indexOf(out, afterActivityID)
		if idx < 0 {
			return nil, fmt.Errorf("%w: %s", ErrActivityNotFound, afterActivityID)
		}
		pos = idx + 1
	}

	activity := models.TimelineActivity{
		ID:        s.opts.NewID(),
		Date:      eventDate,
		StartTime: start,
		EndTime:   end,
		Status:    models.StatusPending,
	}
	out = append(out, models.TimelineActivity{})
	copy(out[pos+1:], out[pos:])
	out[pos] = activity
	renumber(out)
	return out, nil
}

// Update applies a field-level patch. An inverted or empty time range is
// rejected; overlaps with other activities are not.
func (s *DefaultScheduler) Update(current []models.TimelineActivity, id string, patch models.ActivityPatch) ([]models.TimelineActivity, error) {
	out := normalize(current)
	idx := indexOf(out, id)
	if idx < 0 {
		return nil, fmt.Errorf("%w: %s", ErrActivityNotFound, id)
	}
	a := out[idx]

	if patch.Title != nil {
		a.Title = *patch.Title
	}
	if patch.Notes != nil {
		a.Notes = *patch.Notes
	}
	if patch.StartTime != nil {
		if !patch.StartTime.Valid() {
			return nil, models.NewValidationError("startTime", "%d minutes is outside the day", int(*patch.StartTime))
		}
		a.StartTime = *patch.StartTime
	}
	if patch.EndTime != nil {
		if !patch.EndTime.Valid() {
			return nil, models.NewValidationError("endTime", "%d minutes is outside the day", int(*patch.EndTime))
		}
		a.EndTime = *patch.EndTime
	}
	if a.EndTime <= a.StartTime {
		return nil, models.NewValidationError("endTime", "%s must be after startTime %s", a.EndTime, a.StartTime)
	}
	if patch.Status != nil && *patch.Status != a.Status {
		if err := checkTransition(a.Status, *patch.Status); err != nil {
			return nil, err
		}
		a.Status = *patch.Status
	}

	out[idx] = a
	return out, nil
}

// Remove deletes an activity and closes the gap in order.
func (s *DefaultScheduler) Remove(current []models.TimelineActivity, id string) ([]models.TimelineActivity, error) {
	out := normalize(current)
	idx := indexOf(out, id)
	if idx < 0 {
		return nil, fmt.Errorf("%w: %s", ErrActivityNotFound, id)
	}
	out = append(out[:idx], out[idx+1:]...)
	renumber(out)
	return out, nil
}

// Reorder moves the activity at position fromIndex to toIndex. Times are left
// alone; reordering is positional only.
func (s *DefaultScheduler) Reorder(current []models.TimelineActivity, fromIndex, toIndex int) ([]models.TimelineActivity, error) {
	out := normalize(current)
	if fromIndex < 0 || fromIndex >= len(out) {
		return nil, models.NewValidationError("from", "index %d out of range [0,%d)", fromIndex, len(out))
	}
	if toIndex < 0 || toIndex >= len(out) {
		return nil, models.NewValidationError("to", "index %d out of range [0,%d)", toIndex, len(out))
	}
	if fromIndex == toIndex {
		return out, nil
	}
	moved := out[fromIndex]
	if fromIndex < toIndex {
		copy(out[fromIndex:toIndex], out[fromIndex+1:toIndex+1])
	} else {
		copy(out[toIndex+1:fromIndex+1], out[toIndex:fromIndex])
	}
	out[toIndex] = moved
	renumber(out)
	return out, nil
}

// normalize returns a copy sorted by order with order reset to 0..n-1.
func normalize(current []models.TimelineActivity) []models.TimelineActivity {
	out := make([]models.TimelineActivity, len(current), len(current)+1)
	copy(out, current)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	renumber(out)
	return out
}

func renumber(list []models.TimelineActivity) {
	for i := range list {
		list[i].Order = i
	}
}

func indexOf(list []models.TimelineActivity, id string) int {
	for i, a := range list {
		if a.ID == id {
			return i
		}
	}
	return -1
}
