package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// gin context keys set by the middlewares
const (
	ContextUserID    = "user_id"
	ContextUserEmail = "user_email"
	ContextIsAdmin   = "is_admin"
	ContextUsage     = "usage"
)

// session tokens live for a week
const tokenTTL = 7 * 24 * time.Hour

// represents JWT claims
type Claims struct {
	UserID  string `json:"user_id"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"is_admin"`
	jwt.RegisteredClaims
}

// issues and validates HS256 session tokens
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}
