package errors

import "errors"

var (
	ErrNotFound = errors.New("session not found")

	ErrExpired = errors.New("session expired")

	ErrConflict = errors.New("session was modified concurrently")

	ErrInvalidID = errors.New("invalid session ID format")
)
