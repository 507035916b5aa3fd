package wallet

import (
	"context"

	"swiftsub/internal/models"
)

// OperationRequest describes one wallet mutation. Amount is always the
// positive magnitude; the operation invoked (Credit or Debit) decides the
// sign of the ledger entry.
type OperationRequest struct {
	UserID      uint
	Amount      float64
	Kind        models.LedgerKind
	Reference   string // generated when empty
	Description string
}

// BalanceCache is the slice of the cache layer the wallet service needs.
type BalanceCache interface {
	GetBalance(ctx context.Context, userID uint) (float64, error)
	SetBalance(ctx context.Context, userID uint, balance float64) error
	InvalidateBalance(ctx context.Context, userID uint) error
}

// MetricsCollector records wallet operation outcomes.
type MetricsCollector interface {
	RecordTransaction(txType string, amount float64)
	RecordError(operation, errType string)
}
