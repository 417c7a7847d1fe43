package config

import (
	"fmt"

	"eventbook/models"
	"eventbook/services/availability"
	"eventbook/services/timeline"
)

// AvailabilityOptions maps the loaded config onto classifier options.
func (c Config) AvailabilityOptions() availability.Options {
	return availability.Options{
		LeadDays: c.LeadDays,
		Thresholds: availability.Thresholds{
			Low:    c.SeverityLow,
			Medium: c.SeverityMedium,
			High:   c.SeverityHigh,
		},
	}
}

// TimelineOptions maps the loaded config onto scheduler options.
func (c Config) TimelineOptions() (timeline.Options, error) {
	opts := timeline.Options{
		StepMinutes:     c.TimelineStepMinutes,
		DurationMinutes: c.TimelineDefaultMinutes,
		GapMinutes:      c.TimelineGapMinutes,
	}
	if c.TimelineDayStart != "" {
		start, err := models.ParseTimeOfDay(c.TimelineDayStart)
		if err != nil {
			return opts, fmt.Errorf("TIMELINE_DAY_START: %w", err)
		}
		opts.DayStart = start
	}
	return opts, nil
}
