// Package apperr holds sentinel errors shared across service layers.
package apperr

import "errors"

var (
	ErrNotFound    = errors.New("not found")
	ErrInvalid     = errors.New("invalid input")
	ErrUnavailable = errors.New("backend unavailable")
)
