package topup

import "errors"

// Service errors
var (
	ErrAlreadyDecided   = errors.New("topup request already decided")
	ErrUnknownDecision  = errors.New("unknown decision")
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrMissingReference = errors.New("payment reference is required")
)
