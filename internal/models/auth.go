package models

import "github.com/golang-jwt/jwt/v5"

// JWTClaims are the access-token claims issued by the main study-planner API.
// This service only validates them to guard the admin sync endpoints.
type JWTClaims struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// IsAdmin reports whether the token belongs to an administrator.
func (c *JWTClaims) IsAdmin() bool {
	return c != nil && c.Role == "admin"
}
