package model

import "errors"

// Common errors used across the application
var (
	// Account errors
	ErrAlreadyExists = errors.New("username already exists")
	ErrUserNotFound  = errors.New("user not found")
	ErrValidation    = errors.New("validation failed")

	// Score errors
	ErrInvalidOutcome = errors.New("invalid game outcome")
	ErrUnknownGame    = errors.New("unknown game")
)
