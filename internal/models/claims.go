package models

import "github.com/golang-jwt/jwt/v5"

// UserClaims are carried in the JWT and attached to the request context by
// the auth middleware.
type UserClaims struct {
	jwt.RegisteredClaims
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

// IsAdmin reports whether the claims belong to an administrator.
func (c *UserClaims) IsAdmin() bool {
	return c.Role == RoleAdmin
}
