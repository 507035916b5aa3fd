package models

import "time"

// LedgerStatus is the lifecycle state of a ledger entry.
type LedgerStatus string

const (
	LedgerStatusPending  LedgerStatus = "pending"
	LedgerStatusSuccess  LedgerStatus = "success"
	LedgerStatusApproved LedgerStatus = "approved"
	LedgerStatusRejected LedgerStatus = "rejected"
)

// LedgerKind classifies what a ledger entry paid for.
type LedgerKind string

const (
	LedgerKindTopup             LedgerKind = "topup"
	LedgerKindPurchase          LedgerKind = "purchase"
	LedgerKindAgentRegistration LedgerKind = "agent_registration"
	LedgerKindAdminCredit       LedgerKind = "admin_credit"
	LedgerKindAdminDebit        LedgerKind = "admin_debit"
)

// ledgerTransitions is the only set of status changes an entry may undergo.
// Terminal states are sinks.
var ledgerTransitions = map[LedgerStatus][]LedgerStatus{
	LedgerStatusPending: {LedgerStatusSuccess, LedgerStatusApproved, LedgerStatusRejected},
}

// CanTransition reports whether a status change is allowed by the transition table.
func (s LedgerStatus) CanTransition(to LedgerStatus) bool {
	for _, next := range ledgerTransitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

// Terminal reports whether no further transition is permitted from this status.
func (s LedgerStatus) Terminal() bool {
	return len(ledgerTransitions[s]) == 0
}

// Realized reports whether the entry's amount may move a wallet balance.
// Only entries applied through the wallet layer actually do; purchase and
// agent registration entries from the gateway are realized records of money
// collected externally and stay out of the balance sum.
func (s LedgerStatus) Realized() bool {
	return s == LedgerStatusSuccess || s == LedgerStatusApproved
}

// LedgerEntry is one immutable record of a money movement. The reference is
// the idempotency key: the unique index on it is what arbitrates concurrent
// writers, so it must never be relaxed. UserID is nil only for verified
// payments that could not be matched to an account and await reconciliation.
type LedgerEntry struct {
	ID          uint         `gorm:"primarykey" json:"id"`
	UserID      *uint        `gorm:"index" json:"user_id"`
	Reference   string       `gorm:"uniqueIndex;not null" json:"reference"`
	Amount      float64      `gorm:"not null" json:"amount"`
	Status      LedgerStatus `gorm:"not null;default:'pending'" json:"status"`
	Kind        LedgerKind   `gorm:"not null" json:"kind"`
	Description string       `json:"description"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}
