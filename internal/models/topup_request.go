package models

import "time"

// TopupStatus is the lifecycle state of a manual top-up request.
type TopupStatus string

const (
	TopupStatusPending  TopupStatus = "pending"
	TopupStatusApproved TopupStatus = "approved"
	TopupStatusRejected TopupStatus = "rejected"
)

// Terminal reports whether the request can no longer be decided.
func (s TopupStatus) Terminal() bool {
	return s == TopupStatusApproved || s == TopupStatusRejected
}

// TopupRequest is a user-submitted, admin-gated wallet credit. Unlike
// gateway-verified top-ups it carries no proof of payment the system can
// check, so an admin decides it. Approval credits the wallet exactly once;
// rejection credits nothing. Both are terminal.
type TopupRequest struct {
	ID            uint        `gorm:"primarykey" json:"id"`
	UserID        uint        `gorm:"index;not null" json:"user_id"`
	Amount        float64     `gorm:"not null" json:"amount"`
	Reference     string      `gorm:"uniqueIndex;not null" json:"reference"`
	PaymentMethod string      `json:"payment_method"`
	Status        TopupStatus `gorm:"not null;default:'pending'" json:"status"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}
