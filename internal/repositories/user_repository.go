package repositories

import (
	"context"

	"swiftsub/internal/models"
)

// UserRepository holds account state including the wallet balance column.
// Balance mutation is only available as conditional single-statement
// updates; there is deliberately no SetBalance.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)

	// GetBalance returns the current wallet balance.
	GetBalance(ctx context.Context, userID uint) (float64, error)

	// CreditBalance increments the balance unconditionally and returns the
	// new balance. Credits are always safe.
	CreditBalance(ctx context.Context, userID uint, amount float64) (float64, error)

	// DebitBalance decrements the balance with a WHERE balance >= amount
	// guard in the same statement. Zero rows affected means
	// ErrInsufficientFunds and no state change.
	DebitBalance(ctx context.Context, userID uint, amount float64) (float64, error)

	// ForceDebitBalance decrements without the balance guard. Admin override
	// only; it may drive the balance negative.
	ForceDebitBalance(ctx context.Context, userID uint, amount float64) (float64, error)

	// PromoteToAgent upgrades the user's role exactly once; false means the
	// user already holds the agent role (or does not exist).
	PromoteToAgent(ctx context.Context, userID uint) (bool, error)
}
