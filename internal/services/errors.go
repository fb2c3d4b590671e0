package services

import "errors"

// Service-level sentinel errors. Handlers map these onto HTTP status
// codes with errors.Is.
var (
	ErrForbidden         = errors.New("not allowed")
	ErrInvalidAmount     = errors.New("amount must be positive")
	ErrThreadLocked      = errors.New("thread is locked")
	ErrIllegalTransition = errors.New("illegal status transition")
	ErrInactiveProduct   = errors.New("product is not active")
)
