package models

import (
	"math"
	"time"
)

// OrderStatus is the lifecycle state of a purchase order.
type OrderStatus string

const (
	OrderStatusPending OrderStatus = "pending"
	OrderStatusSuccess OrderStatus = "success"
	OrderStatusFailed  OrderStatus = "failed"
)

// Order records a checkout. On the wallet path it is created success
// together with the debit; on the gateway path it is created pending and
// finalized only when the payment verifies. A pending order is never
// auto-cancelled: an admin reviews it and marks it failed.
type Order struct {
	ID          uint        `gorm:"primarykey" json:"id"`
	UserID      uint        `gorm:"index;not null" json:"user_id"`
	Amount      float64     `gorm:"not null" json:"amount"`
	Fee         float64     `gorm:"default:0" json:"fee"`
	Status      OrderStatus `gorm:"not null;default:'pending'" json:"status"`
	Reference   string      `gorm:"uniqueIndex;not null" json:"reference"`
	Description string      `json:"description"`
	Items       JSON        `gorm:"type:jsonb" json:"items"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// ChargeAmount is what the gateway is asked to collect: the cart total plus
// the service fee. The verified amount must equal this exactly.
func (o *Order) ChargeAmount() float64 {
	return o.Amount + o.Fee
}

// ChargeAmountMinor is ChargeAmount in the gateway's minor currency unit.
// Matching against a verified amount happens on this integer: adding Amount
// and Fee as floats can land 1 ulp away from the value the gateway echoes
// back for the same charge.
func (o *Order) ChargeAmountMinor() int64 {
	return int64(math.Round(o.ChargeAmount() * 100))
}
