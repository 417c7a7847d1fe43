package booking

import (
	"errors"
	"fmt"
)

var (
	// ErrSessionNotFound is returned for unknown or expired timeline sessions.
	ErrSessionNotFound = errors.New("booking session not found or expired")
	// ErrSessionForbidden is returned when a user touches another user's session.
	ErrSessionForbidden = errors.New("booking session belongs to another user")
)

// DateUnavailableError reports an event date that cannot be booked.
type DateUnavailableError struct {
	Date   string
	Reason string
}

func (e *DateUnavailableError) Error() string {
	return fmt.Sprintf("date %s is not bookable: %s", e.Date, e.Reason)
}
