package models

import (
	"errors"
	"fmt"
)

// ValidationError reports input that violates an engine invariant. It is always
// returned synchronously and the operation leaves prior state untouched.
type ValidationError struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "validation failed: " + e.Message
	}
	return fmt.Sprintf("validation failed: %s: %s", e.Field, e.Message)
}

func NewValidationError(field, format string, args ...interface{}) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// WarningCode classifies a non-fatal data-quality anomaly.
type WarningCode string

const (
	WarningMalformedDate      WarningCode = "malformed_date"
	WarningDuplicateEvent     WarningCode = "duplicate_event"
	WarningDuplicateComponent WarningCode = "duplicate_component"
	WarningMissingComponentID WarningCode = "missing_component_id"
)

// Warning is one data-quality diagnostic. Records producing warnings are
// skipped; the rest of the computation continues.
type Warning struct {
	Code    WarningCode `json:"code"`
	Ref     string      `json:"ref,omitempty"`
	Message string      `json:"message"`
}
