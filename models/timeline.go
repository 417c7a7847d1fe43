package models

// CatalogComponent is one service/supplier entry of a package as returned by
// the catalog store.
type CatalogComponent struct {
	ID       string `bson:"id" json:"id"`
	Name     string `bson:"name" json:"name"`
	Category string `bson:"category" json:"category"`
}

// ActivityStatus is the lifecycle state of a timeline activity.
type ActivityStatus string

const (
	StatusPending   ActivityStatus = "PENDING"
	StatusConfirmed ActivityStatus = "CONFIRMED"
	StatusPaid      ActivityStatus = "PAID"
	StatusCompleted ActivityStatus = "COMPLETED"
	StatusCancelled ActivityStatus = "CANCELLED"
)

func (s ActivityStatus) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusPaid, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether no transition may leave s.
func (s ActivityStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// TimelineActivity is one scheduled item on the event day.
type TimelineActivity struct {
	ID string `json:"id"`
	// SourceComponentID is empty for manually added activities.
	SourceComponentID string         `json:"sourceComponentId,omitempty"`
	Category          string         `json:"category,omitempty"`
	Title             string         `json:"title"`
	Notes             string         `json:"notes"`
	Date              Date           `json:"date"`
	StartTime         TimeOfDay      `json:"startTime"`
	EndTime           TimeOfDay      `json:"endTime"`
	Status            ActivityStatus `json:"status"`
	Order             int            `json:"order"`
}

// Overlaps reports whether the half-open ranges [start, end) intersect.
func (a TimelineActivity) Overlaps(b TimelineActivity) bool {
	return a.StartTime < b.EndTime && b.StartTime < a.EndTime
}

// ActivityPatch is a field-level update; nil fields are left unchanged.
type ActivityPatch struct {
	Title     *string         `json:"title,omitempty"`
	Notes     *string         `json:"notes,omitempty"`
	StartTime *TimeOfDay      `json:"startTime,omitempty"`
	EndTime   *TimeOfDay      `json:"endTime,omitempty"`
	Status    *ActivityStatus `json:"status,omitempty"`
}

// Conflict is an advisory: two activities whose times overlap. It never blocks
// an operation.
type Conflict struct {
	ActivityA string `json:"activityA"`
	ActivityB string `json:"activityB"`
	Message   string `json:"message"`
}
