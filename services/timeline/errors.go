package timeline

import "errors"

var (
	// ErrActivityNotFound is returned when an operation names an unknown activity.
	ErrActivityNotFound = errors.New("timeline activity not found")
	// ErrIllegalTransition is returned for status changes the lifecycle forbids.
	ErrIllegalTransition = errors.New("illegal status transition")
)
