package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist in the database.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. missing required field, end date before start date).
// Handlers should map this to HTTP 400 with the field errors in the body.
var ErrValidation = errors.New("validation error")

// ErrConflict is returned when a request is well-formed but cannot be applied
// to the current state: a status-transition guard failed, or an ID in the
// path disagrees with the ID in the payload.
// Handlers should map this to HTTP 400 with a descriptive message.
var ErrConflict = errors.New("conflict")

// ErrUnauthorized is returned when credentials are missing or invalid.
// Handlers should map this to HTTP 401.
var ErrUnauthorized = errors.New("unauthorized")

// ErrForbidden is returned when the caller is authenticated but not allowed
// to perform the operation (e.g. a traveler reading another traveler's
// requests). Handlers should map this to HTTP 403.
var ErrForbidden = errors.New("forbidden")

// FieldErrors collects field-scoped validation messages for a single input.
// It wraps ErrValidation so callers can detect it with errors.Is while
// handlers can still surface the individual messages.
type FieldErrors []string

// Add appends a message scoped to the given field.
func (f *FieldErrors) Add(field, message string) {
	*f = append(*f, field+": "+message)
}

func (f FieldErrors) Error() string {
	return fmt.Sprintf("%v: %s", ErrValidation, strings.Join(f, "; "))
}

// Is reports ErrValidation so errors.Is(err, ErrValidation) matches.
func (f FieldErrors) Is(target error) bool {
	return target == ErrValidation
}

// Messages returns the individual field messages for serialization.
func (f FieldErrors) Messages() []string {
	return []string(f)
}
