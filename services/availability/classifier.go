package availability

import (
	"fmt"
	"time"

	"eventbook/models"

	"go.uber.org/zap"
)

const (
	// DefaultLeadDays is the minimum number of days between today and the
	// earliest bookable event date.
	DefaultLeadDays = 7
	// MaxRangeDays caps a single classification request.
	MaxRangeDays = 731
)

// Thresholds are the minimum event counts that reach each count-based tier.
type Thresholds struct {
	Low    int
	Medium int
	High   int
}

var DefaultThresholds = Thresholds{Low: 1, Medium: 2, High: 3}

func (t Thresholds) validate() error {
	if t.Low < 1 || t.Medium <= t.Low || t.High <= t.Medium {
		return fmt.Errorf("severity thresholds must satisfy 1 <= low < medium < high, got %d/%d/%d", t.Low, t.Medium, t.High)
	}
	return nil
}

// Tier maps a day's event count and exclusivity to its severity. Exclusivity
// always wins; otherwise the tier never decreases as count grows.
func (t Thresholds) Tier(count int, exclusive bool) models.Severity {
	switch {
	case exclusive:
		return models.SeverityExclusive
	case count >= t.High:
		return models.SeverityHigh
	case count >= t.Medium:
		return models.SeverityMedium
	case count >= t.Low:
		return models.SeverityLow
	default:
		return models.SeverityNone
	}
}

// Options configures a classifier. Zero values fall back to the defaults.
type Options struct {
	LeadDays   int
	Thresholds Thresholds
	// Now supplies the evaluator's clock; its location decides what "today" is.
	Now func() time.Time
}

// Classifier builds per-day conflict summaries from a raw event list.
type Classifier interface {
	Classify(events []models.EventOccurrence, rangeStart, rangeEnd models.Date) (*models.Classification, error)
	MinimumBookableDate() models.Date
}

// DefaultClassifier is stateless apart from its configuration and is safe for
// concurrent use.
type DefaultClassifier struct {
	leadDays   int
	thresholds Thresholds
	now        func() time.Time
	logger     *zap.Logger
}

func NewClassifier(opts Options, logger *zap.Logger) (*DefaultClassifier, error) {
	if opts.LeadDays < 0 {
		return nil, fmt.Errorf("lead days must not be negative, got %d", opts.LeadDays)
	}
	if opts.LeadDays == 0 {
		opts.LeadDays = DefaultLeadDays
	}
	if opts.Thresholds == (Thresholds{}) {
		opts.Thresholds = DefaultThresholds
	}
	if err := opts.Thresholds.validate(); err != nil {
		return nil, err
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultClassifier{
		leadDays:   opts.LeadDays,
		thresholds: opts.Thresholds,
		now:        opts.Now,
		logger:     logger,
	}, nil
}

// MinimumBookableDate returns today + lead days. It is evaluated on every call.
func (c *DefaultClassifier) MinimumBookableDate() models.Date {
	return MinimumBookableDate(c.now(), c.leadDays)
}

// MinimumBookableDate returns the first selectable date for the given clock
// reading, using the calendar day of now in its own location.
func MinimumBookableDate(now time.Time, leadDays int) models.Date {
	return models.DateOf(now).AddDays(leadDays)
}

// ValidateRange checks that [rangeStart, rangeEnd] is a usable range of at
// most MaxRangeDays days.
func ValidateRange(rangeStart, rangeEnd models.Date) error {
	if rangeStart.IsZero() {
		return models.NewValidationError("rangeStart", "is required")
	}
	if rangeEnd.IsZero() {
		return models.NewValidationError("rangeEnd", "is required")
	}
	if rangeEnd.Before(rangeStart) {
		return models.NewValidationError("rangeEnd", "%s is before rangeStart %s", rangeEnd, rangeStart)
	}
	if span := rangeStart.DaysUntil(rangeEnd) + 1; span > MaxRangeDays {
		return models.NewValidationError("rangeEnd", "range covers %d days, at most %d allowed", span, MaxRangeDays)
	}
	return nil
}

// Classify summarizes every date in the closed range [rangeStart, rangeEnd].
// Events with unparseable dates are skipped and reported as warnings.
func (c *DefaultClassifier) Classify(events []models.EventOccurrence, rangeStart, rangeEnd models.Date) (*models.Classification, error) {
	if err := ValidateRange(rangeStart, rangeEnd); err != nil {
		return nil, err
	}

	minDate := c.MinimumBookableDate()
	result := &models.Classification{
		RangeStart:          rangeStart,
		RangeEnd:            rangeEnd,
		MinimumBookableDate: minDate,
		Days:                make(map[models.Date]models.CalendarDay, rangeStart.DaysUntil(rangeEnd)+1),
	}

	type tally struct {
		count     int
		exclusive bool
		seen      map[string]struct{}
	}
	tallies := make(map[models.Date]*tally)

	for i, ev := range events {
		day, err := models.ParseDate(ev.Date)
		if err != nil {
			ref := ev.ID
			if ref == "" {
				ref = fmt.Sprintf("index:%d", i)
			}
			result.Warnings = append(result.Warnings, models.Warning{
				Code:    models.WarningMalformedDate,
				Ref:     ref,
				Message: err.Error(),
			})
			c.logger.Warn("Classify: skipping event with malformed date",
				zap.String("ref", ref), zap.String("date", ev.Date))
			continue
		}
		if day.Before(rangeStart) || day.After(rangeEnd) {
			continue
		}
		t := tallies[day]
		if t == nil {
			t = &tally{seen: make(map[string]struct{})}
			tallies[day] = t
		}
		// A duplicate record still contributes its exclusive flag.
		t.exclusive = t.exclusive || ev.IsExclusiveCategory
		if ev.ID != "" {
			if _, dup := t.seen[ev.ID]; dup {
				result.Warnings = append(result.Warnings, models.Warning{
					Code:    models.WarningDuplicateEvent,
					Ref:     ev.ID,
					Message: fmt.Sprintf("event %s listed more than once on %s", ev.ID, day),
				})
				c.logger.Warn("Classify: duplicate event record",
					zap.String("ref", ev.ID), zap.String("date", ev.Date))
				continue
			}
			t.seen[ev.ID] = struct{}{}
		}
		t.count++
	}

	for d := rangeStart; !d.After(rangeEnd); d = d.AddDays(1) {
		day := models.CalendarDay{
			Date:       d,
			Selectable: !d.Before(minDate),
		}
		if t := tallies[d]; t != nil {
			day.EventCount = t.count
			day.HasExclusiveEvent = t.exclusive
		}
		day.SeverityTier = c.thresholds.Tier(day.EventCount, day.HasExclusiveEvent)
		result.Days[d] = day
	}
	return result, nil
}
