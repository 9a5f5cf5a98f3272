package storage

import "errors"

// Backend errors
var (
	// ErrCorrupt marks a table that exists but cannot be decoded
	ErrCorrupt = errors.New("stored table is corrupt")
	// ErrUnavailable marks a backend that could not be reached or read
	ErrUnavailable = errors.New("storage unavailable")
)
