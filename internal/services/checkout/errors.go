package checkout

import "errors"

// Service errors
var (
	ErrInvalidAmount   = errors.New("invalid cart total")
	ErrUnknownMethod   = errors.New("unknown payment method")
	ErrOrderNotPending = errors.New("order is not pending")
)
