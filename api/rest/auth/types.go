package auth

import (
	"context"

	"codeberg.org/quickai/server/quickai/users"
)

// the user lookups the auth endpoints need
type UserRepository interface {
	FindOrCreateByProvider(ctx context.Context, provider, providerID, email, name, avatarURL string) (*users.User, error)
	FindByID(ctx context.Context, userID string) (*users.User, error)
}

// AuthResponse returned after successful OAuth callback
type AuthResponse struct {
	User  *users.User `json:"user"`
	Token string      `json:"token"`
}

// UserResponse wraps user data
type UserResponse struct {
	User *users.User `json:"user"`
}

// MessageResponse for simple success messages
type MessageResponse struct {
	Message string `json:"message"`
}
