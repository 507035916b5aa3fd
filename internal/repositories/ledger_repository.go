package repositories

import (
	"context"

	"swiftsub/internal/models"
)

// LedgerRepository is the append-only store of money movements. Entries are
// never updated in place, with one exception: the pending→terminal status
// transition used by the approval workflows, which is a conditional update so
// a losing concurrent writer affects zero rows.
type LedgerRepository interface {
	// Append inserts the entry. A unique-reference violation is returned as
	// ErrDuplicateReference; the insert is the arbiter between concurrent
	// writers carrying the same reference.
	Append(ctx context.Context, entry *models.LedgerEntry) error

	// FindByReference returns the entry for the reference, or ErrEntryNotFound.
	FindByReference(ctx context.Context, reference string) (*models.LedgerEntry, error)

	// MarkStatus transitions the entry from pending to the given terminal
	// status. It returns false when zero rows matched, i.e. the entry was
	// already terminal (or absent); the caller treats that as a no-op, not a
	// double-apply.
	MarkStatus(ctx context.Context, reference string, to models.LedgerStatus) (bool, error)

	// ListByUser returns the user's most recent entries.
	ListByUser(ctx context.Context, userID uint, limit int) ([]models.LedgerEntry, error)

	// ListUnattributed returns realized entries with no user association,
	// i.e. verified payments awaiting manual reconciliation.
	ListUnattributed(ctx context.Context, limit int) ([]models.LedgerEntry, error)
}
