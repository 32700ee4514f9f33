package storage

import "errors"

// Storage errors for append-only stores.
var (
	// ErrNotFound is returned when a requested run does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateKey is returned when attempting to insert an observation
	// with a key that already exists. Recorded history is append-only.
	ErrDuplicateKey = errors.New("duplicate key: append-only store does not allow updates")

	// ErrInvalidInput is returned when input validation fails.
	ErrInvalidInput = errors.New("invalid input")
)
