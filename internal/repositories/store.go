package repositories

import "gorm.io/gorm"

// Store bundles the repositories behind one handle so that services can run
// multi-table work atomically. ExecuteInTransaction hands the callback a
// Store bound to the database transaction; returning an error rolls
// everything back.
type Store interface {
	Ledger() LedgerRepository
	Users() UserRepository
	Topups() TopupRepository
	Orders() OrderRepository
	Agents() AgentRepository

	ExecuteInTransaction(fn func(tx Store) error) error
}

type store struct {
	db     *gorm.DB
	ledger LedgerRepository
	users  UserRepository
	topups TopupRepository
	orders OrderRepository
	agents AgentRepository
}

// NewStore creates a Store backed by the given gorm handle.
func NewStore(db *gorm.DB) Store {
	return &store{
		db:     db,
		ledger: NewLedgerRepository(db),
		users:  NewUserRepository(db),
		topups: NewTopupRepository(db),
		orders: NewOrderRepository(db),
		agents: NewAgentRepository(db),
	}
}

func (s *store) Ledger() LedgerRepository { return s.ledger }
func (s *store) Users() UserRepository    { return s.users }
func (s *store) Topups() TopupRepository  { return s.topups }
func (s *store) Orders() OrderRepository  { return s.orders }
func (s *store) Agents() AgentRepository  { return s.agents }

func (s *store) ExecuteInTransaction(fn func(tx Store) error) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return fn(NewStore(tx))
	})
}
