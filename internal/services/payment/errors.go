package payment

import "errors"

// Service errors
var (
	ErrUnsupportedKind = errors.New("unsupported payment kind")
)
