package entity

import "errors"

var (
	// ErrNotFound is returned when a fixture lookup misses
	ErrNotFound = errors.New("not found")

	ErrInvalidInput = errors.New("invalid input")

	// ErrStepOutOfOrder is returned when a signer step's prerequisite is unmet
	ErrStepOutOfOrder = errors.New("step out of order")

	// ErrSessionClosed is returned for expired, completed or invalid signing links
	ErrSessionClosed = errors.New("signing session is closed")

	ErrCooldown = errors.New("cooldown active")

	// ErrInvalidState is returned when a contract action does not apply to its current status
	ErrInvalidState = errors.New("invalid state")
)
