package checkout

import (
	"context"
	"testing"

	"swiftsub/internal/models"
	"swiftsub/internal/repositories"
	"swiftsub/internal/repositories/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

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

func TestCheckout_WalletPath(t *testing.T) {
	t.Run("debit and order commit together", func(t *testing.T) {
		store := mocks.NewStore()
		cache := new(mockCache)
		store.UserRepo.On("DebitBalance", mock.Anything, uint(1), 50.0).Return(150.0, nil)
		store.LedgerRepo.On("Append", mock.Anything, mock.MatchedBy(func(e *models.LedgerEntry) bool {
			return e.Amount == -50 && e.Kind == models.LedgerKindPurchase
		})).Return(nil)
		store.OrderRepo.On("Create", mock.Anything, mock.MatchedBy(func(o *models.Order) bool {
			return o.Status == models.OrderStatusSuccess && o.Amount == 50 && o.Fee == 0 &&
				o.Items["bundle"] == "2GB"
		})).Return(nil)
		cache.On("InvalidateBalance", mock.Anything, uint(1)).Return(nil)

		s := NewService(store, cache, Config{})
		order, err := s.Checkout(context.Background(), 1, 50, MethodWallet, "2GB bundle",
			models.JSON{"bundle": "2GB"})

		assert.NoError(t, err)
		assert.Equal(t, models.OrderStatusSuccess, order.Status)
		assert.Equal(t, order.Amount, order.ChargeAmount())
		store.AssertExpectations(t)
		cache.AssertExpectations(t)
	})

	t.Run("insufficient funds leaves no order and no ledger row", func(t *testing.T) {
		store := mocks.NewStore()
		store.UserRepo.On("DebitBalance", mock.Anything, uint(1), 500.0).
			Return(0.0, repositories.ErrInsufficientFunds)

		s := NewService(store, new(mockCache), Config{})
		order, err := s.Checkout(context.Background(), 1, 500, MethodWallet, "10GB bundle", nil)

		assert.ErrorIs(t, err, repositories.ErrInsufficientFunds)
		assert.Nil(t, order)
		store.LedgerRepo.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
		store.OrderRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestCheckout_GatewayPath(t *testing.T) {
	store := mocks.NewStore()
	store.OrderRepo.On("Create", mock.Anything, mock.MatchedBy(func(o *models.Order) bool {
		return o.Status == models.OrderStatusPending && o.Amount == 100 && o.Fee == 1.5
	})).Return(nil)

	s := NewService(store, new(mockCache), Config{})
	order, err := s.Checkout(context.Background(), 1, 100, MethodGateway, "5GB bundle", nil)

	assert.NoError(t, err)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Equal(t, 101.5, order.ChargeAmount())
	// No money moves until the gateway confirms.
	store.UserRepo.AssertNotCalled(t, "DebitBalance", mock.Anything, mock.Anything, mock.Anything)
	store.LedgerRepo.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
	store.AssertExpectations(t)
}

func TestCheckout_Validation(t *testing.T) {
	s := NewService(mocks.NewStore(), new(mockCache), Config{})

	_, err := s.Checkout(context.Background(), 1, 0, MethodWallet, "", nil)
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = s.Checkout(context.Background(), 1, 50, "crypto", "", nil)
	assert.ErrorIs(t, err, ErrUnknownMethod)
}

func TestServiceFee(t *testing.T) {
	s := NewService(mocks.NewStore(), new(mockCache), Config{ServiceFeePercent: 0.015})

	// Same total always yields the same fee, rounded to the cent.
	assert.Equal(t, 1.5, s.ServiceFee(100))
	assert.Equal(t, s.ServiceFee(73.33), s.ServiceFee(73.33))
	assert.Equal(t, 1.1, s.ServiceFee(73.33))
}

func TestMarkFailed(t *testing.T) {
	t.Run("pending order fails", func(t *testing.T) {
		store := mocks.NewStore()
		store.OrderRepo.On("MarkFailed", mock.Anything, uint(9)).Return(true, nil)

		s := NewService(store, new(mockCache), Config{})
		assert.NoError(t, s.MarkFailed(context.Background(), 9))
	})

	t.Run("finalized order is rejected", func(t *testing.T) {
		store := mocks.NewStore()
		store.OrderRepo.On("MarkFailed", mock.Anything, uint(9)).Return(false, nil)
		store.OrderRepo.On("GetByID", mock.Anything, uint(9)).
			Return(&models.Order{ID: 9, Status: models.OrderStatusSuccess}, nil)

		s := NewService(store, new(mockCache), Config{})
		assert.ErrorIs(t, s.MarkFailed(context.Background(), 9), ErrOrderNotPending)
	})

	t.Run("unknown order", func(t *testing.T) {
		store := mocks.NewStore()
		store.OrderRepo.On("MarkFailed", mock.Anything, uint(9)).Return(false, nil)
		store.OrderRepo.On("GetByID", mock.Anything, uint(9)).Return(nil, repositories.ErrOrderNotFound)

		s := NewService(store, new(mockCache), Config{})
		assert.ErrorIs(t, s.MarkFailed(context.Background(), 9), repositories.ErrOrderNotFound)
	})
}
