// Package apperr holds the error kinds the HTTP layer maps to status codes.
// Domain packages wrap these with fmt.Errorf("...: %w", ...) so callers can
// test the kind with errors.Is.
package apperr

import "errors"

var (
	ErrNotFound          = errors.New("not found")
	ErrInvalidInput      = errors.New("invalid input")
	ErrInvalidTransition = errors.New("invalid state transition")
	ErrConflict          = errors.New("conflict")
)
