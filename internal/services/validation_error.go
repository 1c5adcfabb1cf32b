package services

import (
	"studyhub/internal/validation"
)

// ValidationError carries per-field messages out of a service call so the
// handler can render them inline.
type ValidationError struct {
	Fields validation.FieldErrors
}

func (e *ValidationError) Error() string {
	return "validation failed"
}
