// Package mocks provides testify mocks for the repository layer.
package mocks

import (
	"context"

	"swiftsub/internal/models"
	"swiftsub/internal/repositories"

	"github.com/stretchr/testify/mock"
)

// Store bundles mock repositories behind the repositories.Store interface.
// ExecuteInTransaction runs the callback against the same mocks, so tests
// set expectations once and exercise transactional code paths directly.
type Store struct {
	LedgerRepo *LedgerRepository
	UserRepo   *UserRepository
	TopupRepo  *TopupRepository
	OrderRepo  *OrderRepository
	AgentRepo  *AgentRepository
}

func NewStore() *Store {
	return &Store{
		LedgerRepo: new(LedgerRepository),
		UserRepo:   new(UserRepository),
		TopupRepo:  new(TopupRepository),
		OrderRepo:  new(OrderRepository),
		AgentRepo:  new(AgentRepository),
	}
}

func (s *Store) Ledger() repositories.LedgerRepository { return s.LedgerRepo }
func (s *Store) Users() repositories.UserRepository    { return s.UserRepo }
func (s *Store) Topups() repositories.TopupRepository  { return s.TopupRepo }
func (s *Store) Orders() repositories.OrderRepository  { return s.OrderRepo }
func (s *Store) Agents() repositories.AgentRepository  { return s.AgentRepo }

func (s *Store) ExecuteInTransaction(fn func(tx repositories.Store) error) error {
	return fn(s)
}

// AssertExpectations asserts every sub-repository's expectations.
func (s *Store) AssertExpectations(t mock.TestingT) {
	s.LedgerRepo.AssertExpectations(t)
	s.UserRepo.AssertExpectations(t)
	s.TopupRepo.AssertExpectations(t)
	s.OrderRepo.AssertExpectations(t)
	s.AgentRepo.AssertExpectations(t)
}

type LedgerRepository struct {
	mock.Mock
}

func (m *LedgerRepository) Append(ctx context.Context, entry *models.LedgerEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *LedgerRepository) FindByReference(ctx context.Context, reference string) (*models.LedgerEntry, error) {
	args := m.Called(ctx, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LedgerEntry), args.Error(1)
}

func (m *LedgerRepository) MarkStatus(ctx context.Context, reference string, to models.LedgerStatus) (bool, error) {
	args := m.Called(ctx, reference, to)
	return args.Bool(0), args.Error(1)
}

func (m *LedgerRepository) ListByUser(ctx context.Context, userID uint, limit int) ([]models.LedgerEntry, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.LedgerEntry), args.Error(1)
}

func (m *LedgerRepository) ListUnattributed(ctx context.Context, limit int) ([]models.LedgerEntry, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.LedgerEntry), args.Error(1)
}

type UserRepository struct {
	mock.Mock
}

func (m *UserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *UserRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *UserRepository) GetBalance(ctx context.Context, userID uint) (float64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(float64), args.Error(1)
}

func (m *UserRepository) CreditBalance(ctx context.Context, userID uint, amount float64) (float64, error) {
	args := m.Called(ctx, userID, amount)
	return args.Get(0).(float64), args.Error(1)
}

func (m *UserRepository) DebitBalance(ctx context.Context, userID uint, amount float64) (float64, error) {
	args := m.Called(ctx, userID, amount)
	return args.Get(0).(float64), args.Error(1)
}

func (m *UserRepository) ForceDebitBalance(ctx context.Context, userID uint, amount float64) (float64, error) {
	args := m.Called(ctx, userID, amount)
	return args.Get(0).(float64), args.Error(1)
}

func (m *UserRepository) PromoteToAgent(ctx context.Context, userID uint) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}

type TopupRepository struct {
	mock.Mock
}

func (m *TopupRepository) Create(ctx context.Context, req *models.TopupRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *TopupRepository) GetByID(ctx context.Context, id uint) (*models.TopupRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TopupRequest), args.Error(1)
}

func (m *TopupRepository) ListPending(ctx context.Context, limit int) ([]models.TopupRequest, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.TopupRequest), args.Error(1)
}

func (m *TopupRepository) MarkDecided(ctx context.Context, id uint, to models.TopupStatus) (bool, error) {
	args := m.Called(ctx, id, to)
	return args.Bool(0), args.Error(1)
}

type OrderRepository struct {
	mock.Mock
}

func (m *OrderRepository) Create(ctx context.Context, order *models.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *OrderRepository) GetByID(ctx context.Context, id uint) (*models.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *OrderRepository) GetByReference(ctx context.Context, reference string) (*models.Order, error) {
	args := m.Called(ctx, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *OrderRepository) ListByUser(ctx context.Context, userID uint, limit int) ([]models.Order, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Order), args.Error(1)
}

func (m *OrderRepository) MarkSuccessByReference(ctx context.Context, reference string) (bool, error) {
	args := m.Called(ctx, reference)
	return args.Bool(0), args.Error(1)
}

func (m *OrderRepository) MarkFailed(ctx context.Context, id uint) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

type AgentRepository struct {
	mock.Mock
}

func (m *AgentRepository) Create(ctx context.Context, req *models.AgentValidationRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *AgentRepository) GetByID(ctx context.Context, id uint) (*models.AgentValidationRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AgentValidationRequest), args.Error(1)
}

func (m *AgentRepository) GetByReference(ctx context.Context, reference string) (*models.AgentValidationRequest, error) {
	args := m.Called(ctx, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AgentValidationRequest), args.Error(1)
}

func (m *AgentRepository) MarkDecided(ctx context.Context, id uint, to models.AgentStatus) (bool, error) {
	args := m.Called(ctx, id, to)
	return args.Bool(0), args.Error(1)
}
