package users

import (
	"context"

	"codeberg.org/quickai/server/api/rest/pagination"
	"codeberg.org/quickai/server/quickai/creations"
)

// creation queries used by the user endpoints
type CreationRepository interface {
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]creations.Creation, int, error)
	ListPublished(ctx context.Context, limit, offset int) ([]creations.Creation, int, error)
	ToggleLike(ctx context.Context, creationID, userID string) (bool, error)
}

type CreationsResponse struct {
	Success    bool                 `json:"success"`
	Creations  []creations.Creation `json:"creations"`
	Pagination pagination.Meta      `json:"pagination"`
}

type ToggleLikeRequest struct {
	ID string `json:"id" binding:"required"`
}

type UsageResponse struct {
	Plan      string `json:"plan"`       // "free" or "premium"
	FreeUsage int    `json:"free_usage"` // metered operations used so far
	Limit     int    `json:"limit"`      // free-tier limit (-1 for unlimited)
	Remaining int    `json:"remaining"`  // operations left (-1 for unlimited)
}
