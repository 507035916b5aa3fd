package wallet

import (
	"context"
	"fmt"

	"swiftsub/internal/models"
	"swiftsub/internal/repositories"

	"github.com/google/uuid"
)

// Service is the balance projector: every wallet mutation flows through it
// (or through ApplyCredit/ApplyDebit inside another service's transaction)
// and pairs a ledger entry with a conditional balance update.
type Service interface {
	GetBalance(ctx context.Context, userID uint) (float64, error)
	GetHistory(ctx context.Context, userID uint, limit int) ([]models.LedgerEntry, error)

	Credit(ctx context.Context, req OperationRequest) (float64, error)
	Debit(ctx context.Context, req OperationRequest) (float64, error)

	// AdminTransaction applies a manual credit or debit. Admin debits skip
	// the balance guard: they are an explicit override and may drive the
	// balance negative.
	AdminTransaction(ctx context.Context, userID uint, amount float64, txType, description string) (float64, error)
}

type service struct {
	store   repositories.Store
	cache   BalanceCache
	metrics MetricsCollector
}

// NewService creates a new wallet service.
func NewService(store repositories.Store, cache BalanceCache, metrics MetricsCollector) Service {
	if store == nil {
		panic("store is required")
	}
	if cache == nil {
		panic("cache is required")
	}
	if metrics == nil {
		metrics = &NoopMetricsCollector{}
	}
	return &service{store: store, cache: cache, metrics: metrics}
}

func (s *service) GetBalance(ctx context.Context, userID uint) (float64, error) {
	if balance, err := s.cache.GetBalance(ctx, userID); err == nil {
		return balance, nil
	}
	balance, err := s.store.Users().GetBalance(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to get balance: %w", err)
	}
	s.cache.SetBalance(ctx, userID, balance)
	return balance, nil
}

func (s *service) GetHistory(ctx context.Context, userID uint, limit int) ([]models.LedgerEntry, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.store.Ledger().ListByUser(ctx, userID, limit)
}

func (s *service) Credit(ctx context.Context, req OperationRequest) (float64, error) {
	if req.Amount <= 0 {
		return 0, ErrInvalidAmount
	}
	entry := s.newEntry(req, req.Amount)

	var newBalance float64
	err := s.store.ExecuteInTransaction(func(tx repositories.Store) error {
		var err error
		newBalance, err = ApplyCredit(ctx, tx, entry)
		return err
	})
	if err != nil {
		s.metrics.RecordError("credit", err.Error())
		return 0, err
	}

	s.cache.InvalidateBalance(ctx, req.UserID)
	s.metrics.RecordTransaction("credit", req.Amount)
	return newBalance, nil
}

func (s *service) Debit(ctx context.Context, req OperationRequest) (float64, error) {
	if req.Amount <= 0 {
		return 0, ErrInvalidAmount
	}
	entry := s.newEntry(req, -req.Amount)

	var newBalance float64
	err := s.store.ExecuteInTransaction(func(tx repositories.Store) error {
		var err error
		newBalance, err = ApplyDebit(ctx, tx, entry)
		return err
	})
	if err != nil {
		s.metrics.RecordError("debit", err.Error())
		return 0, err
	}

	s.cache.InvalidateBalance(ctx, req.UserID)
	s.metrics.RecordTransaction("debit", req.Amount)
	return newBalance, nil
}

func (s *service) AdminTransaction(ctx context.Context, userID uint, amount float64, txType, description string) (float64, error) {
	if amount <= 0 {
		return 0, ErrInvalidAmount
	}

	switch txType {
	case "credit":
		return s.Credit(ctx, OperationRequest{
			UserID:      userID,
			Amount:      amount,
			Kind:        models.LedgerKindAdminCredit,
			Reference:   adminReference(),
			Description: description,
		})
	case "debit":
		entry := &models.LedgerEntry{
			UserID:      &userID,
			Reference:   adminReference(),
			Amount:      -amount,
			Status:      models.LedgerStatusSuccess,
			Kind:        models.LedgerKindAdminDebit,
			Description: description,
		}
		var newBalance float64
		err := s.store.ExecuteInTransaction(func(tx repositories.Store) error {
			if err := tx.Ledger().Append(ctx, entry); err != nil {
				return err
			}
			var err error
			newBalance, err = tx.Users().ForceDebitBalance(ctx, userID, amount)
			return err
		})
		if err != nil {
			s.metrics.RecordError("admin_debit", err.Error())
			return 0, err
		}
		s.cache.InvalidateBalance(ctx, userID)
		s.metrics.RecordTransaction("admin_debit", amount)
		return newBalance, nil
	default:
		return 0, ErrUnknownTransaction
	}
}

func (s *service) newEntry(req OperationRequest, signedAmount float64) *models.LedgerEntry {
	userID := req.UserID
	reference := req.Reference
	if reference == "" {
		reference = walletReference()
	}
	return &models.LedgerEntry{
		UserID:      &userID,
		Reference:   reference,
		Amount:      signedAmount,
		Status:      models.LedgerStatusSuccess,
		Kind:        req.Kind,
		Description: req.Description,
	}
}

func walletReference() string {
	return "WLT-" + uuid.NewString()
}

func adminReference() string {
	return "ADM-" + uuid.NewString()
}
