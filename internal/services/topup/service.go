// Package topup implements the admin-gated manual top-up workflow:
// pending → approved (credits the wallet exactly once) or
// pending → rejected (credits nothing). Both are terminal.
package topup

import (
	"context"
	"errors"
	"fmt"

	"swiftsub/internal/models"
	"swiftsub/internal/repositories"
	"swiftsub/internal/services/wallet"
)

// Decisions accepted by Decide.
const (
	DecisionApprove = "approve"
	DecisionReject  = "reject"
)

type Service interface {
	// Submit records a manual top-up claim. A pending ledger entry is
	// written under the same reference so the claimed money is visible in
	// the audit trail before anyone acts on it.
	Submit(ctx context.Context, userID uint, amount float64, reference, method string) (*models.TopupRequest, error)

	// Decide approves or rejects a pending request. Concurrent decisions on
	// the same request resolve to exactly one effective transition; the
	// loser gets ErrAlreadyDecided. Unknown ids get
	// repositories.ErrTopupNotFound.
	Decide(ctx context.Context, topupID uint, decision string) error

	ListPending(ctx context.Context, limit int) ([]models.TopupRequest, error)
}

type service struct {
	store repositories.Store
	cache wallet.BalanceCache
}

// NewService creates a new topup workflow service.
func NewService(store repositories.Store, cache wallet.BalanceCache) Service {
	if store == nil {
		panic("store is required")
	}
	if cache == nil {
		panic("cache is required")
	}
	return &service{store: store, cache: cache}
}

func (s *service) Submit(ctx context.Context, userID uint, amount float64, reference, method string) (*models.TopupRequest, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if reference == "" {
		return nil, ErrMissingReference
	}

	req := &models.TopupRequest{
		UserID:        userID,
		Amount:        amount,
		Reference:     reference,
		PaymentMethod: method,
		Status:        models.TopupStatusPending,
	}
	err := s.store.ExecuteInTransaction(func(tx repositories.Store) error {
		entry := &models.LedgerEntry{
			UserID:      &userID,
			Reference:   reference,
			Amount:      amount,
			Status:      models.LedgerStatusPending,
			Kind:        models.LedgerKindTopup,
			Description: fmt.Sprintf("manual topup via %s", method),
		}
		if err := tx.Ledger().Append(ctx, entry); err != nil {
			return err
		}
		return tx.Topups().Create(ctx, req)
	})
	if err != nil {
		return nil, err
	}
	return req, nil
}

func (s *service) Decide(ctx context.Context, topupID uint, decision string) error {
	var to models.TopupStatus
	switch decision {
	case DecisionApprove:
		to = models.TopupStatusApproved
	case DecisionReject:
		to = models.TopupStatusRejected
	default:
		return fmt.Errorf("%w: %q", ErrUnknownDecision, decision)
	}

	req, err := s.store.Topups().GetByID(ctx, topupID)
	if err != nil {
		return err
	}

	err = s.store.ExecuteInTransaction(func(tx repositories.Store) error {
		// The request transition is the arbiter: a second concurrent decide
		// matches zero rows here and nothing below it runs.
		decided, err := tx.Topups().MarkDecided(ctx, topupID, to)
		if err != nil {
			return err
		}
		if !decided {
			return ErrAlreadyDecided
		}

		ledgerStatus := models.LedgerStatusRejected
		if to == models.TopupStatusApproved {
			ledgerStatus = models.LedgerStatusApproved
		}
		if _, err := tx.Ledger().MarkStatus(ctx, req.Reference, ledgerStatus); err != nil {
			return err
		}

		if to == models.TopupStatusApproved {
			if _, err := tx.Users().CreditBalance(ctx, req.UserID, req.Amount); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrAlreadyDecided) {
			return ErrAlreadyDecided
		}
		return err
	}

	if to == models.TopupStatusApproved {
		s.cache.InvalidateBalance(ctx, req.UserID)
	}
	return nil
}

func (s *service) ListPending(ctx context.Context, limit int) ([]models.TopupRequest, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return s.store.Topups().ListPending(ctx, limit)
}
