package admin

import (
	"context"

	"codeberg.org/quickai/server/internal/usage"
	"codeberg.org/quickai/server/quickai/users"
)

// source of truth for a user's plan
type UserRepository interface {
	SetPlan(ctx context.Context, userID string, plan usage.Plan) (*users.User, error)
}

// a usage store that keeps its own copy of the plan (redis)
type PlanMirror interface {
	SetPlan(ctx context.Context, userID string, plan usage.Plan) error
}

type SetPlanRequest struct {
	Plan string `json:"plan" binding:"required,oneof=free premium"`
}

type UserPlanResponse struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Plan      string `json:"plan"`
	FreeUsage int    `json:"free_usage"`
}
