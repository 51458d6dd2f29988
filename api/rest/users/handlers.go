package users

import (
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"codeberg.org/quickai/server/api/rest/pagination"
	"codeberg.org/quickai/server/internal/auth"
	"codeberg.org/quickai/server/internal/errors"
	"codeberg.org/quickai/server/internal/usage"
	"codeberg.org/quickai/server/quickai/creations"
)

const (
	defaultPageSize = 50
	maxPageSize     = 100
)

// ListUserCreationsHandler godoc
// @Summary List the caller's creations
// @Description Returns the authenticated user's creations, newest first
// @Tags user
// @Produce json
// @Param limit query int false "Page size (default 50, max 100)"
// @Param offset query int false "Offset"
// @Success 200 {object} CreationsResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.Envelope
// @Router /api/v1/user/get-user-creations [get]
// @Security BearerAuth
func ListUserCreationsHandler(repo CreationRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := auth.GetUserID(c)
		if !ok {
			errors.Unauthorized(c, "")
			return
		}

		params := pagination.FromQuery(c, defaultPageSize, maxPageSize)

		items, total, err := repo.ListByUser(c.Request.Context(), userID, params.Limit, params.Offset)
		if err != nil {
			errors.FailureInternal(c, "Failed to load creations", err)
			return
		}

		c.JSON(http.StatusOK, CreationsResponse{
			Success:    true,
			Creations:  items,
			Pagination: pagination.NewMeta(params, total),
		})
	}
}

// ListPublishedCreationsHandler godoc
// @Summary List published creations
// @Description Returns creations users chose to publish to the community feed
// @Tags user
// @Produce json
// @Param limit query int false "Page size (default 50, max 100)"
// @Param offset query int false "Offset"
// @Success 200 {object} CreationsResponse
// @Failure 500 {object} errors.Envelope
// @Router /api/v1/user/get-published-creations [get]
// @Security BearerAuth
func ListPublishedCreationsHandler(repo CreationRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		params := pagination.FromQuery(c, defaultPageSize, maxPageSize)

		items, total, err := repo.ListPublished(c.Request.Context(), params.Limit, params.Offset)
		if err != nil {
			errors.FailureInternal(c, "Failed to load creations", err)
			return
		}

		c.JSON(http.StatusOK, CreationsResponse{
			Success:    true,
			Creations:  items,
			Pagination: pagination.NewMeta(params, total),
		})
	}
}

// ToggleLikeHandler godoc
// @Summary Like or unlike a creation
// @Tags user
// @Accept json
// @Produce json
// @Param request body ToggleLikeRequest true "Creation to toggle"
// @Success 200 {object} errors.Envelope
// @Failure 400 {object} errors.Envelope
// @Router /api/v1/user/toggle-like-creation [post]
// @Security BearerAuth
func ToggleLikeHandler(repo CreationRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := auth.GetUserID(c)
		if !ok {
			errors.Unauthorized(c, "")
			return
		}

		var req ToggleLikeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			errors.Failure(c, http.StatusBadRequest, "Creation id is required")
			return
		}

		if !errors.IsValidUUID(req.ID) {
			errors.Failure(c, http.StatusOK, "Creation not found")
			return
		}

		liked, err := repo.ToggleLike(c.Request.Context(), req.ID, userID)
		if stderrors.Is(err, creations.ErrCreationNotFound) {
			errors.Failure(c, http.StatusOK, "Creation not found")
			return
		}

		if err != nil {
			errors.FailureInternal(c, "Failed to update like", err)
			return
		}

		message := "Creation Unliked"
		if liked {
			message = "Creation Liked"
		}

		c.JSON(http.StatusOK, errors.Envelope{Success: true, Message: message})
	}
}

// GetUsageHandler godoc
// @Summary Get the caller's plan and free-tier usage
// @Tags user
// @Produce json
// @Success 200 {object} UsageResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /api/v1/user/usage [get]
// @Security BearerAuth
func GetUsageHandler(gate *usage.Gate) gin.HandlerFunc {
	return func(c *gin.Context) {
		state, ok := auth.GetUsage(c)
		if !ok {
			errors.Unauthorized(c, "")
			return
		}

		limit := gate.FreeLimit()
		if state.Plan.IsPremium() {
			limit = -1
		}

		c.JSON(http.StatusOK, UsageResponse{
			Plan:      string(state.Plan),
			FreeUsage: state.FreeUsage,
			Limit:     limit,
			Remaining: gate.Remaining(state),
		})
	}
}
