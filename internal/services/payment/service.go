// Package payment turns a gateway-verified payment reference into its
// exactly-once ledger and balance effect. The unique reference index is the
// only concurrency arbiter: the ledger append goes first, and a duplicate
// insert means another request already applied this payment.
package payment

import (
	"context"
	"errors"
	"fmt"
	"log"

	"swiftsub/internal/models"
	"swiftsub/internal/repositories"
	"swiftsub/internal/services/gateway"
	"swiftsub/internal/services/wallet"
)

// Service is the idempotency guard around verify + ledger + balance.
type Service interface {
	// ProcessPayment is safe to call any number of times, concurrently, for
	// the same reference: at most one call produces a ledger entry and a
	// balance delta. A non-nil error is retryable (gateway or store
	// trouble); terminal conditions come back inside the Outcome.
	ProcessPayment(ctx context.Context, reference string, kind models.LedgerKind) (*Outcome, error)
}

type service struct {
	store   repositories.Store
	gateway gateway.Client
	cache   wallet.BalanceCache
}

// NewService creates a new payment processing service.
func NewService(store repositories.Store, gw gateway.Client, cache wallet.BalanceCache) Service {
	if store == nil {
		panic("store is required")
	}
	if gw == nil {
		panic("gateway client is required")
	}
	if cache == nil {
		panic("cache is required")
	}
	return &service{store: store, gateway: gw, cache: cache}
}

func (s *service) ProcessPayment(ctx context.Context, reference string, kind models.LedgerKind) (*Outcome, error) {
	switch kind {
	case models.LedgerKindTopup, models.LedgerKindPurchase, models.LedgerKindAgentRegistration:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedKind, kind)
	}

	verified, err := s.gateway.Verify(ctx, reference)
	if err != nil {
		if errors.Is(err, gateway.ErrPaymentNotSuccessful) {
			return &Outcome{Status: OutcomeFailed, Reference: reference, Reason: err.Error()}, nil
		}
		// Gateway unreachable or gave an unusable answer. The money may
		// already have moved, so this propagates as retryable.
		return nil, err
	}

	amount := verified.MajorAmount()

	user, err := s.store.Users().GetByEmail(ctx, verified.CustomerEmail)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return s.recordUnattributed(ctx, verified, kind)
		}
		return nil, fmt.Errorf("failed to resolve payer: %w", err)
	}
	userID := user.ID

	var (
		newBalance float64
		reconcile  string
	)
	err = s.store.ExecuteInTransaction(func(tx repositories.Store) error {
		// Only the topup branch routes this entry through the wallet layer.
		// Purchase and agent registration entries record what the gateway
		// collected; their amounts never count toward a wallet balance, which
		// sums only entries applied as wallet credits and debits.
		entry := &models.LedgerEntry{
			UserID:      &userID,
			Reference:   verified.Reference,
			Amount:      amount,
			Status:      models.LedgerStatusSuccess,
			Kind:        kind,
			Description: fmt.Sprintf("gateway %s payment", kind),
		}

		switch kind {
		case models.LedgerKindTopup:
			var err error
			newBalance, err = wallet.ApplyCredit(ctx, tx, entry)
			return err
		case models.LedgerKindPurchase:
			if err := tx.Ledger().Append(ctx, entry); err != nil {
				return err
			}
			reconcile = s.finalizeOrder(ctx, tx, verified)
			return nil
		case models.LedgerKindAgentRegistration:
			if err := tx.Ledger().Append(ctx, entry); err != nil {
				return err
			}
			reconcile = s.applyAgentUpgrade(ctx, tx, userID, verified.Reference)
			return nil
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, repositories.ErrDuplicateReference) {
			return s.alreadyProcessed(ctx, reference), nil
		}
		return nil, err
	}

	if kind == models.LedgerKindTopup {
		s.cache.InvalidateBalance(ctx, userID)
	}
	if reconcile != "" {
		log.Printf("payment %s recorded but needs reconciliation: %s", reference, reconcile)
		return &Outcome{Status: OutcomeReconciliationRequired, Reference: reference, Amount: amount, Reason: reconcile}, nil
	}
	return &Outcome{Status: OutcomeApplied, Reference: reference, Amount: amount, NewBalance: newBalance}, nil
}

// alreadyProcessed builds the replay outcome, reporting the amount the
// earlier call recorded in the ledger rather than re-deriving it.
func (s *service) alreadyProcessed(ctx context.Context, reference string) *Outcome {
	outcome := &Outcome{Status: OutcomeAlreadyProcessed, Reference: reference}
	if entry, err := s.store.Ledger().FindByReference(ctx, reference); err == nil {
		outcome.Amount = entry.Amount
	}
	return outcome
}

// finalizeOrder flips the pending order for this reference to success. Any
// problem here must not roll back the ledger entry (the money is real), so
// it reports a reconciliation reason instead of an error.
func (s *service) finalizeOrder(ctx context.Context, tx repositories.Store, verified *gateway.VerifiedPayment) string {
	order, err := tx.Orders().GetByReference(ctx, verified.Reference)
	if err != nil {
		if errors.Is(err, repositories.ErrOrderNotFound) {
			return "no order for reference"
		}
		return fmt.Sprintf("order lookup failed: %v", err)
	}
	if verified.Amount != order.ChargeAmountMinor() {
		return fmt.Sprintf("verified amount %.2f does not match charge amount %.2f",
			verified.MajorAmount(), order.ChargeAmount())
	}
	finalized, err := tx.Orders().MarkSuccessByReference(ctx, verified.Reference)
	if err != nil {
		return fmt.Sprintf("order finalization failed: %v", err)
	}
	if !finalized {
		return "order already finalized"
	}
	return ""
}

// applyAgentUpgrade approves the pending agent validation request tied to
// this reference and upgrades the role, exactly once.
func (s *service) applyAgentUpgrade(ctx context.Context, tx repositories.Store, userID uint, reference string) string {
	req, err := tx.Agents().GetByReference(ctx, reference)
	if err != nil {
		if errors.Is(err, repositories.ErrAgentNotFound) {
			return "no agent validation request for reference"
		}
		return fmt.Sprintf("agent request lookup failed: %v", err)
	}
	decided, err := tx.Agents().MarkDecided(ctx, req.ID, models.AgentStatusApproved)
	if err != nil {
		return fmt.Sprintf("agent approval failed: %v", err)
	}
	if !decided {
		return "agent validation request already decided"
	}
	if _, err := tx.Users().PromoteToAgent(ctx, userID); err != nil {
		return fmt.Sprintf("role upgrade failed: %v", err)
	}
	return ""
}

// recordUnattributed stores a verified payment whose payer matches no
// account. The entry is written with a nil user id so the money stays
// visible for manual reconciliation; it is never silently discarded.
func (s *service) recordUnattributed(ctx context.Context, verified *gateway.VerifiedPayment, kind models.LedgerKind) (*Outcome, error) {
	entry := &models.LedgerEntry{
		UserID:      nil,
		Reference:   verified.Reference,
		Amount:      verified.MajorAmount(),
		Status:      models.LedgerStatusSuccess,
		Kind:        kind,
		Description: fmt.Sprintf("unmatched payer %s", verified.CustomerEmail),
	}
	if err := s.store.Ledger().Append(ctx, entry); err != nil {
		if errors.Is(err, repositories.ErrDuplicateReference) {
			return s.alreadyProcessed(ctx, verified.Reference), nil
		}
		return nil, err
	}
	log.Printf("verified payment %s has no matching user (%s); recorded for reconciliation",
		verified.Reference, verified.CustomerEmail)
	return &Outcome{
		Status:    OutcomeReconciliationRequired,
		Reference: verified.Reference,
		Amount:    entry.Amount,
		Reason:    "no user matches payer identity",
	}, nil
}
