package domain

import "errors"

// Sentinel errors services wrap with %w; handlers map them to HTTP
// status codes. Conflicts (duplicate email, overlapping booking,
// no-op update) surface as client errors, not 409s.
var (
	ErrValidation   = errors.New("validation failed")
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrConflict     = errors.New("conflict")
)
