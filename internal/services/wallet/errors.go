package wallet

import "errors"

// Service errors
var (
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrUnknownTransaction = errors.New("unknown wallet transaction type")
	ErrMissingUser        = errors.New("ledger entry has no user association")
	ErrNonRealizedStatus  = errors.New("only realized entries may move a balance")
)
