package models

import "fmt"

// EventOccurrence is a booked event as returned by the event store. Date is the
// raw ISO date string; exclusivity is decided once, when the record is written.
type EventOccurrence struct {
	ID                  string `bson:"id" json:"id"`
	Date                string `bson:"date" json:"date"`
	CategoryName        string `bson:"categoryName" json:"categoryName"`
	IsExclusiveCategory bool   `bson:"isExclusiveCategory" json:"isExclusiveCategory"`
}

// Severity orders how busy a day is. EXCLUSIVE outranks every count-based tier.
type Severity int

const (
	SeverityNone Severity = iota
	SeverityLow
	SeverityMedium
	SeverityHigh
	SeverityExclusive
)

var severityNames = [...]string{"NONE", "LOW", "MEDIUM", "HIGH", "EXCLUSIVE"}

func (s Severity) String() string {
	if s < SeverityNone || s > SeverityExclusive {
		return fmt.Sprintf("Severity(%d)", int(s))
	}
	return severityNames[s]
}

func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Severity) UnmarshalText(b []byte) error {
	for i, name := range severityNames {
		if name == string(b) {
			*s = Severity(i)
			return nil
		}
	}
	return fmt.Errorf("unknown severity %q", string(b))
}

// CalendarDay is one date's conflict summary. It is rebuilt on every
// classification, never updated in place.
type CalendarDay struct {
	Date              Date     `json:"date"`
	EventCount        int      `json:"eventCount"`
	HasExclusiveEvent bool     `json:"hasExclusiveEvent"`
	SeverityTier      Severity `json:"severityTier"`
	// Selectable is false for any date before the minimum bookable date,
	// whatever its tier.
	Selectable bool `json:"selectable"`
}

// Bookable reports whether a caller may book this day: it must be past the
// lead time and not blocked by an exclusive event.
func (d CalendarDay) Bookable() bool {
	return d.Selectable && !d.HasExclusiveEvent
}

// Classification is the result of classifying a date range.
type Classification struct {
	RangeStart          Date                 `json:"rangeStart"`
	RangeEnd            Date                 `json:"rangeEnd"`
	MinimumBookableDate Date                 `json:"minimumBookableDate"`
	Days                map[Date]CalendarDay `json:"days"`
	Warnings            []Warning            `json:"warnings,omitempty"`
}

// Day returns the summary for d and whether d is inside the classified range.
func (c *Classification) Day(d Date) (CalendarDay, bool) {
	day, ok := c.Days[d]
	return day, ok
}

// CanSelect reports whether d is inside the range and bookable.
func (c *Classification) CanSelect(d Date) bool {
	day, ok := c.Days[d]
	return ok && day.Bookable()
}
