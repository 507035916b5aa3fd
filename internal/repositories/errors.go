package repositories

import "errors"

// Repository errors
var (
	// ErrDuplicateReference means the unique index on ledger references
	// rejected an insert. Callers treat it as "already processed", never as a
	// failure to surface to the end user.
	ErrDuplicateReference = errors.New("duplicate payment reference")

	// ErrInsufficientFunds means a conditional debit matched zero rows
	// because the balance was below the requested amount. Nothing was
	// written.
	ErrInsufficientFunds = errors.New("insufficient wallet balance")

	ErrUserNotFound   = errors.New("user not found")
	ErrEntryNotFound  = errors.New("ledger entry not found")
	ErrTopupNotFound  = errors.New("topup request not found")
	ErrOrderNotFound  = errors.New("order not found")
	ErrAgentNotFound  = errors.New("agent validation request not found")
	ErrDuplicateEmail = errors.New("email already registered")
)
