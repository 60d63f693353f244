// Package apperr defines sentinel errors shared across layers.
package apperr

import "errors"

var (
	// ErrNotFound is returned when a record id has no match in the document.
	ErrNotFound = errors.New("not found")
	// ErrInvalidFormat is returned by the lenient parser when the imported
	// payload is not a JSON object at the top level.
	ErrInvalidFormat = errors.New("invalid data format: expected an object")
)
