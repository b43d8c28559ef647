package domain

import "errors"

// Sentinel errors for the categories the delivery layer knows how to map
// to HTTP status codes. Lower layers wrap these with fmt.Errorf and %w so
// the cause is preserved while errors.Is still matches.
var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrInternal     = errors.New("internal error")
)
