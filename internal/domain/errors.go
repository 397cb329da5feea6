package domain

import "errors"

// Shared sentinel errors. Services return these (possibly wrapped with %w);
// controllers map them to HTTP status codes.
var (
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("forbidden")
	ErrInvalidInput = errors.New("invalid input")
)
