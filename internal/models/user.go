package models

import (
	"gorm.io/gorm"
)

// User roles
const (
	RoleUser  = "user"
	RoleAgent = "agent"
	RoleAdmin = "admin"
)

// User owns exactly one wallet, held as the WalletBalance column. The
// balance starts at 0 when the account is created and is mutated only
// through ledger entry application in the repositories layer; nothing else
// may write it.
type User struct {
	gorm.Model
	Email         string  `gorm:"uniqueIndex;not null"`
	Password      string  `gorm:"not null"`
	Name          string  `gorm:"not null"`
	Phone         string  `gorm:"uniqueIndex;not null"`
	Role          string  `gorm:"default:'user'"`
	WalletBalance float64 `gorm:"not null;default:0"`
	Status        string  `gorm:"default:'active'"`
}
