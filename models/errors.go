package models

import "errors"

// Domain errors surfaced by repositories and services. Handlers map these to
// HTTP statuses; anything else is treated as an upstream failure.
var (
	ErrUnauthenticated   = errors.New("authentication required")
	ErrForbidden         = errors.New("insufficient privileges")
	ErrValidation        = errors.New("invalid input")
	ErrSlotUnavailable   = errors.New("slot unavailable")
	ErrNotFound          = errors.New("record not found")
	ErrInvalidStatus     = errors.New("invalid status value")
	ErrInvalidTransition = errors.New("illegal status transition")
)
