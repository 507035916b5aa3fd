package payment

import (
	"context"
	"fmt"
	"testing"

	"swiftsub/internal/models"
	"swiftsub/internal/repositories"
	"swiftsub/internal/repositories/mocks"
	"swiftsub/internal/services/gateway"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockGateway struct {
	mock.Mock
}

func (m *mockGateway) Verify(ctx context.Context, reference string) (*gateway.VerifiedPayment, error) {
	args := m.Called(ctx, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gateway.VerifiedPayment), args.Error(1)
}

type mockCache struct {
	mock.Mock
}

func (m *mockCache) GetBalance(ctx context.Context, userID uint) (float64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(float64), args.Error(1)
}

func (m *mockCache) SetBalance(ctx context.Context, userID uint, balance float64) error {
	args := m.Called(ctx, userID, balance)
	return args.Error(0)
}

func (m *mockCache) InvalidateBalance(ctx context.Context, userID uint) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func verifiedTopup() *gateway.VerifiedPayment {
	return &gateway.VerifiedPayment{
		Reference:     "PAY-abc",
		Status:        "success",
		Amount:        10000,
		CustomerEmail: "jane@example.com",
	}
}

func payerJane() *models.User {
	user := &models.User{Email: "jane@example.com"}
	user.ID = 7
	return user
}

func TestProcessPayment_TopupApplied(t *testing.T) {
	store := mocks.NewStore()
	gw := new(mockGateway)
	cache := new(mockCache)

	gw.On("Verify", mock.Anything, "PAY-abc").Return(verifiedTopup(), nil)
	store.UserRepo.On("GetByEmail", mock.Anything, "jane@example.com").Return(payerJane(), nil)
	store.LedgerRepo.On("Append", mock.Anything, mock.MatchedBy(func(e *models.LedgerEntry) bool {
		// Gateway reports minor units; the ledger holds 100.00, never 10000.
		return e.Amount == 100.0 && e.Reference == "PAY-abc" && *e.UserID == 7
	})).Return(nil)
	store.UserRepo.On("CreditBalance", mock.Anything, uint(7), 100.0).Return(350.0, nil)
	cache.On("InvalidateBalance", mock.Anything, uint(7)).Return(nil)

	s := NewService(store, gw, cache)
	outcome, err := s.ProcessPayment(context.Background(), "PAY-abc", models.LedgerKindTopup)

	assert.NoError(t, err)
	assert.Equal(t, OutcomeApplied, outcome.Status)
	assert.Equal(t, 100.0, outcome.Amount)
	assert.Equal(t, 350.0, outcome.NewBalance)
	store.AssertExpectations(t)
	gw.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestProcessPayment_ReplayIsAlreadyProcessed(t *testing.T) {
	store := mocks.NewStore()
	gw := new(mockGateway)
	cache := new(mockCache)

	userID := uint(7)
	stored := &models.LedgerEntry{
		UserID:    &userID,
		Reference: "PAY-abc",
		Amount:    100,
		Status:    models.LedgerStatusSuccess,
		Kind:      models.LedgerKindTopup,
	}

	gw.On("Verify", mock.Anything, "PAY-abc").Return(verifiedTopup(), nil)
	store.UserRepo.On("GetByEmail", mock.Anything, "jane@example.com").Return(payerJane(), nil)
	store.LedgerRepo.On("Append", mock.Anything, mock.Anything).Return(repositories.ErrDuplicateReference)
	store.LedgerRepo.On("FindByReference", mock.Anything, "PAY-abc").Return(stored, nil)

	s := NewService(store, gw, cache)
	outcome, err := s.ProcessPayment(context.Background(), "PAY-abc", models.LedgerKindTopup)

	assert.NoError(t, err)
	assert.Equal(t, OutcomeAlreadyProcessed, outcome.Status)
	// The amount reported is what the first call put in the ledger.
	assert.Equal(t, 100.0, outcome.Amount)
	store.UserRepo.AssertNotCalled(t, "CreditBalance", mock.Anything, mock.Anything, mock.Anything)
	store.AssertExpectations(t)
}

func TestProcessPayment_GatewayOutcomes(t *testing.T) {
	t.Run("unsuccessful payment is terminal with no writes", func(t *testing.T) {
		store := mocks.NewStore()
		gw := new(mockGateway)
		gw.On("Verify", mock.Anything, "PAY-bad").Return(nil, gateway.ErrPaymentNotSuccessful)

		s := NewService(store, gw, new(mockCache))
		outcome, err := s.ProcessPayment(context.Background(), "PAY-bad", models.LedgerKindTopup)

		assert.NoError(t, err)
		assert.Equal(t, OutcomeFailed, outcome.Status)
		store.LedgerRepo.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
	})

	t.Run("unreachable gateway propagates as retryable", func(t *testing.T) {
		store := mocks.NewStore()
		gw := new(mockGateway)
		gw.On("Verify", mock.Anything, "PAY-abc").Return(nil, gateway.ErrGatewayUnavailable)

		s := NewService(store, gw, new(mockCache))
		outcome, err := s.ProcessPayment(context.Background(), "PAY-abc", models.LedgerKindTopup)

		assert.ErrorIs(t, err, gateway.ErrGatewayUnavailable)
		assert.Nil(t, outcome)
		store.LedgerRepo.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
	})

	t.Run("unsupported kind rejected before verification", func(t *testing.T) {
		store := mocks.NewStore()
		gw := new(mockGateway)

		s := NewService(store, gw, new(mockCache))
		_, err := s.ProcessPayment(context.Background(), "PAY-abc", models.LedgerKindAdminCredit)

		assert.ErrorIs(t, err, ErrUnsupportedKind)
		gw.AssertNotCalled(t, "Verify", mock.Anything, mock.Anything)
	})
}

func TestProcessPayment_UnmatchedPayerGoesToReconciliation(t *testing.T) {
	store := mocks.NewStore()
	gw := new(mockGateway)

	gw.On("Verify", mock.Anything, "PAY-abc").Return(verifiedTopup(), nil)
	store.UserRepo.On("GetByEmail", mock.Anything, "jane@example.com").
		Return(nil, repositories.ErrUserNotFound)
	store.LedgerRepo.On("Append", mock.Anything, mock.MatchedBy(func(e *models.LedgerEntry) bool {
		return e.UserID == nil && e.Amount == 100.0 && e.Reference == "PAY-abc"
	})).Return(nil)

	s := NewService(store, gw, new(mockCache))
	outcome, err := s.ProcessPayment(context.Background(), "PAY-abc", models.LedgerKindTopup)

	assert.NoError(t, err)
	assert.Equal(t, OutcomeReconciliationRequired, outcome.Status)
	store.UserRepo.AssertNotCalled(t, "CreditBalance", mock.Anything, mock.Anything, mock.Anything)
	store.AssertExpectations(t)
}

func TestProcessPayment_Purchase(t *testing.T) {
	pendingOrder := func(amount, fee float64) *models.Order {
		order := &models.Order{
			UserID:    7,
			Amount:    amount,
			Fee:       fee,
			Status:    models.OrderStatusPending,
			Reference: "PAY-abc",
		}
		order.ID = 11
		return order
	}

	t.Run("matching amount finalizes the order", func(t *testing.T) {
		store := mocks.NewStore()
		gw := new(mockGateway)

		gw.On("Verify", mock.Anything, "PAY-abc").Return(verifiedTopup(), nil)
		store.UserRepo.On("GetByEmail", mock.Anything, "jane@example.com").Return(payerJane(), nil)
		store.LedgerRepo.On("Append", mock.Anything, mock.Anything).Return(nil)
		store.OrderRepo.On("GetByReference", mock.Anything, "PAY-abc").
			Return(pendingOrder(99, 1), nil)
		store.OrderRepo.On("MarkSuccessByReference", mock.Anything, "PAY-abc").Return(true, nil)

		s := NewService(store, gw, new(mockCache))
		outcome, err := s.ProcessPayment(context.Background(), "PAY-abc", models.LedgerKindPurchase)

		assert.NoError(t, err)
		assert.Equal(t, OutcomeApplied, outcome.Status)
		store.AssertExpectations(t)
	})

	t.Run("totals that round unevenly as floats still finalize", func(t *testing.T) {
		store := mocks.NewStore()
		gw := new(mockGateway)

		// 73.33 + 1.10 is not exactly 74.43 in float64; the gateway echoes
		// 7443 minor units for the same charge and the match must hold.
		verified := &gateway.VerifiedPayment{
			Reference:     "PAY-abc",
			Status:        "success",
			Amount:        7443,
			CustomerEmail: "jane@example.com",
		}
		gw.On("Verify", mock.Anything, "PAY-abc").Return(verified, nil)
		store.UserRepo.On("GetByEmail", mock.Anything, "jane@example.com").Return(payerJane(), nil)
		store.LedgerRepo.On("Append", mock.Anything, mock.Anything).Return(nil)
		store.OrderRepo.On("GetByReference", mock.Anything, "PAY-abc").
			Return(pendingOrder(73.33, 1.10), nil)
		store.OrderRepo.On("MarkSuccessByReference", mock.Anything, "PAY-abc").Return(true, nil)

		s := NewService(store, gw, new(mockCache))
		outcome, err := s.ProcessPayment(context.Background(), "PAY-abc", models.LedgerKindPurchase)

		assert.NoError(t, err)
		assert.Equal(t, OutcomeApplied, outcome.Status)
		store.AssertExpectations(t)
	})

	t.Run("amount mismatch keeps the money and flags reconciliation", func(t *testing.T) {
		store := mocks.NewStore()
		gw := new(mockGateway)

		gw.On("Verify", mock.Anything, "PAY-abc").Return(verifiedTopup(), nil)
		store.UserRepo.On("GetByEmail", mock.Anything, "jane@example.com").Return(payerJane(), nil)
		store.LedgerRepo.On("Append", mock.Anything, mock.Anything).Return(nil)
		store.OrderRepo.On("GetByReference", mock.Anything, "PAY-abc").
			Return(pendingOrder(200, 3), nil)

		s := NewService(store, gw, new(mockCache))
		outcome, err := s.ProcessPayment(context.Background(), "PAY-abc", models.LedgerKindPurchase)

		assert.NoError(t, err)
		assert.Equal(t, OutcomeReconciliationRequired, outcome.Status)
		assert.NotEmpty(t, outcome.Reason)
		store.OrderRepo.AssertNotCalled(t, "MarkSuccessByReference", mock.Anything, mock.Anything)
	})
}

func TestProcessPayment_AgentRegistration(t *testing.T) {
	store := mocks.NewStore()
	gw := new(mockGateway)

	pendingReq := &models.AgentValidationRequest{UserID: 7, Reference: "PAY-abc", Status: models.AgentStatusPending}
	pendingReq.ID = 3

	gw.On("Verify", mock.Anything, "PAY-abc").Return(verifiedTopup(), nil)
	store.UserRepo.On("GetByEmail", mock.Anything, "jane@example.com").Return(payerJane(), nil)
	store.LedgerRepo.On("Append", mock.Anything, mock.Anything).Return(nil)
	store.AgentRepo.On("GetByReference", mock.Anything, "PAY-abc").Return(pendingReq, nil)
	store.AgentRepo.On("MarkDecided", mock.Anything, uint(3), models.AgentStatusApproved).Return(true, nil)
	store.UserRepo.On("PromoteToAgent", mock.Anything, uint(7)).Return(true, nil)

	s := NewService(store, gw, new(mockCache))
	outcome, err := s.ProcessPayment(context.Background(), "PAY-abc", models.LedgerKindAgentRegistration)

	assert.NoError(t, err)
	assert.Equal(t, OutcomeApplied, outcome.Status)
	store.AssertExpectations(t)
}

func TestProcessPayment_ClientClaimIsNeverTrusted(t *testing.T) {
	// Only the gateway's answer matters; there is no code path from a
	// client-supplied success flag to a ledger write.
	store := mocks.NewStore()
	gw := new(mockGateway)
	gw.On("Verify", mock.Anything, "PAY-fake").
		Return(nil, fmt.Errorf("%w: gateway status %q", gateway.ErrPaymentNotSuccessful, "abandoned"))

	s := NewService(store, gw, new(mockCache))
	outcome, err := s.ProcessPayment(context.Background(), "PAY-fake", models.LedgerKindTopup)

	assert.NoError(t, err)
	assert.Equal(t, OutcomeFailed, outcome.Status)
	store.LedgerRepo.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
	store.UserRepo.AssertNotCalled(t, "CreditBalance", mock.Anything, mock.Anything, mock.Anything)
}
