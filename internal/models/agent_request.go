package models

import "time"

// AgentStatus is the lifecycle state of an agent validation request.
type AgentStatus string

const (
	AgentStatusPending  AgentStatus = "pending"
	AgentStatusApproved AgentStatus = "approved"
	AgentStatusRejected AgentStatus = "rejected"
)

// Terminal reports whether the request can no longer be decided.
func (s AgentStatus) Terminal() bool {
	return s == AgentStatusApproved || s == AgentStatusRejected
}

// AgentValidationRequest gates the upgrade of a user to the agent role. It
// follows the same approve/reject discipline as TopupRequest, but the
// exactly-once side effect of approval is a role change, not a balance one.
type AgentValidationRequest struct {
	ID        uint        `gorm:"primarykey" json:"id"`
	UserID    uint        `gorm:"index;not null" json:"user_id"`
	Reference string      `gorm:"uniqueIndex;not null" json:"reference"`
	Status    AgentStatus `gorm:"not null;default:'pending'" json:"status"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}
