package repositories

import "errors"

// Sentinel errors shared by all repository implementations. Handlers map
// these onto HTTP status codes with errors.Is.
var (
	ErrNotFound          = errors.New("record not found")
	ErrDuplicate         = errors.New("record already exists")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrRefundExceeded    = errors.New("refund exceeds refundable balance")
)
