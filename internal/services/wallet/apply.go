package wallet

import (
	"context"

	"swiftsub/internal/models"
	"swiftsub/internal/repositories"
)

// ApplyCredit appends the ledger entry and increments the balance as one
// unit of work against the given store. Callers that need the credit to be
// atomic with other writes pass the transaction-bound store from
// ExecuteInTransaction. The append goes first so the unique reference
// arbitrates duplicates before any balance movement:
// repositories.ErrDuplicateReference passes through untouched.
func ApplyCredit(ctx context.Context, tx repositories.Store, entry *models.LedgerEntry) (float64, error) {
	if entry.UserID == nil {
		return 0, ErrMissingUser
	}
	if !entry.Status.Realized() {
		return 0, ErrNonRealizedStatus
	}
	if err := tx.Ledger().Append(ctx, entry); err != nil {
		return 0, err
	}
	return tx.Users().CreditBalance(ctx, *entry.UserID, entry.Amount)
}

// ApplyDebit performs the conditional balance decrement and, only if the
// guard held, appends the (negative-amount) ledger entry. On
// repositories.ErrInsufficientFunds no ledger row is written; on append
// failure the caller's transaction rolls the decrement back.
func ApplyDebit(ctx context.Context, tx repositories.Store, entry *models.LedgerEntry) (float64, error) {
	if entry.UserID == nil {
		return 0, ErrMissingUser
	}
	if !entry.Status.Realized() {
		return 0, ErrNonRealizedStatus
	}
	newBalance, err := tx.Users().DebitBalance(ctx, *entry.UserID, -entry.Amount)
	if err != nil {
		return 0, err
	}
	if err := tx.Ledger().Append(ctx, entry); err != nil {
		return 0, err
	}
	return newBalance, nil
}
