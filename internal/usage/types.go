package usage

import (
	"context"
	"errors"
)

// subscription plan reported by the identity store
type Plan string

const (
	PlanFree    Plan = "free"
	PlanPremium Plan = "premium"
)

// free-tier operations allowed before an upgrade is required
const DefaultFreeLimit = 10

var (
	ErrQuotaExceeded   = errors.New("Limit reached. Upgrade to continue.")                 //nolint:staticcheck // user-facing message
	ErrPremiumRequired = errors.New("This feature is only available for premium users") //nolint:staticcheck // user-facing message
	ErrUserNotFound    = errors.New("user not found")
)

// per-user usage as seen at request time
type State struct {
	Plan      Plan `json:"plan"`
	FreeUsage int  `json:"free_usage"`
}

// anything that is not premium is treated as free tier
func (p Plan) IsPremium() bool {
	return p == PlanPremium
}

// normalizes an arbitrary plan string from the identity store
func ParsePlan(s string) Plan {
	if Plan(s) == PlanPremium {
		return PlanPremium
	}

	return PlanFree
}

// the identity provider's metadata store; owns the authoritative counter
type Store interface {
	GetUsage(ctx context.Context, userID string) (*State, error)

	// atomically adds one and returns the new count
	IncrementFreeUsage(ctx context.Context, userID string) (int, error)

	// atomically adds one only if the current count is below limit
	ReserveFreeUsage(ctx context.Context, userID string, limit int) (bool, error)

	// atomically subtracts one, never going below zero
	ReleaseFreeUsage(ctx context.Context, userID string) error
}
