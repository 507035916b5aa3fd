// Package checkout turns a cart total into an order through one of two
// payment paths: an atomic synchronous wallet debit, or a pending order that
// the payment pipeline finalizes once the gateway confirms the charge.
package checkout

import (
	"context"
	"math"

	"swiftsub/internal/models"
	"swiftsub/internal/repositories"
	"swiftsub/internal/services/wallet"

	"github.com/google/uuid"
)

// Payment methods accepted by Checkout.
const (
	MethodWallet  = "wallet"
	MethodGateway = "gateway"
)

// DefaultServiceFeePercent is charged on top of the cart total on the
// gateway path only; wallet debits carry no fee.
const DefaultServiceFeePercent = 0.015

// Config holds checkout settings.
type Config struct {
	ServiceFeePercent float64
}

type Service interface {
	// Checkout creates the order for the cart total. Wallet method: debits
	// synchronously and returns a success order, or
	// repositories.ErrInsufficientFunds with no order and no ledger row.
	// Gateway method: returns a pending order whose ChargeAmount (total +
	// fee) is what the gateway must collect under the order's reference.
	// Items carries the cart's bundle line items into the order record.
	Checkout(ctx context.Context, userID uint, cartTotal float64, method, description string, items models.JSON) (*models.Order, error)

	// MarkFailed is the admin resolution for a pending gateway order whose
	// payment never verified. Finalized orders return ErrOrderNotPending.
	MarkFailed(ctx context.Context, orderID uint) error

	// ServiceFee returns the deterministic fee for a cart total on the
	// gateway path.
	ServiceFee(cartTotal float64) float64

	ListOrders(ctx context.Context, userID uint, limit int) ([]models.Order, error)
}

type service struct {
	store  repositories.Store
	cache  wallet.BalanceCache
	config Config
}

// NewService creates a new checkout service.
func NewService(store repositories.Store, cache wallet.BalanceCache, config Config) Service {
	if store == nil {
		panic("store is required")
	}
	if cache == nil {
		panic("cache is required")
	}
	if config.ServiceFeePercent == 0 {
		config.ServiceFeePercent = DefaultServiceFeePercent
	}
	return &service{store: store, cache: cache, config: config}
}

func (s *service) Checkout(ctx context.Context, userID uint, cartTotal float64, method, description string, items models.JSON) (*models.Order, error) {
	if cartTotal <= 0 {
		return nil, ErrInvalidAmount
	}
	switch method {
	case MethodWallet:
		return s.walletCheckout(ctx, userID, cartTotal, description, items)
	case MethodGateway:
		return s.gatewayCheckout(ctx, userID, cartTotal, description, items)
	default:
		return nil, ErrUnknownMethod
	}
}

// walletCheckout debits the wallet and creates the order in one database
// transaction. The conditional debit runs first: on insufficient funds the
// transaction ends before any order or ledger row exists.
func (s *service) walletCheckout(ctx context.Context, userID uint, cartTotal float64, description string, items models.JSON) (*models.Order, error) {
	reference := "WLT-" + uuid.NewString()
	order := &models.Order{
		UserID:      userID,
		Amount:      cartTotal,
		Fee:         0,
		Status:      models.OrderStatusSuccess,
		Reference:   reference,
		Description: description,
		Items:       items,
	}

	err := s.store.ExecuteInTransaction(func(tx repositories.Store) error {
		entry := &models.LedgerEntry{
			UserID:      &userID,
			Reference:   reference,
			Amount:      -cartTotal,
			Status:      models.LedgerStatusSuccess,
			Kind:        models.LedgerKindPurchase,
			Description: description,
		}
		if _, err := wallet.ApplyDebit(ctx, tx, entry); err != nil {
			return err
		}
		return tx.Orders().Create(ctx, order)
	})
	if err != nil {
		return nil, err
	}

	s.cache.InvalidateBalance(ctx, userID)
	return order, nil
}

// gatewayCheckout records the pending order keyed by a fresh reference. The
// fee is fixed here, before the charge amount leaves the system, so the
// amount the gateway later verifies can be matched exactly.
func (s *service) gatewayCheckout(ctx context.Context, userID uint, cartTotal float64, description string, items models.JSON) (*models.Order, error) {
	order := &models.Order{
		UserID:      userID,
		Amount:      cartTotal,
		Fee:         s.ServiceFee(cartTotal),
		Status:      models.OrderStatusPending,
		Reference:   "PAY-" + uuid.NewString(),
		Description: description,
		Items:       items,
	}
	if err := s.store.Orders().Create(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

func (s *service) MarkFailed(ctx context.Context, orderID uint) error {
	failed, err := s.store.Orders().MarkFailed(ctx, orderID)
	if err != nil {
		return err
	}
	if !failed {
		// Distinguish "already finalized" from "no such order".
		if _, err := s.store.Orders().GetByID(ctx, orderID); err != nil {
			return err
		}
		return ErrOrderNotPending
	}
	return nil
}

func (s *service) ServiceFee(cartTotal float64) float64 {
	return math.Round(cartTotal*s.config.ServiceFeePercent*100) / 100
}

func (s *service) ListOrders(ctx context.Context, userID uint, limit int) ([]models.Order, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.store.Orders().ListByUser(ctx, userID, limit)
}
