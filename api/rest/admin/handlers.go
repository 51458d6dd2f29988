package admin

import (
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"codeberg.org/quickai/server/internal/errors"
	"codeberg.org/quickai/server/internal/logger"
	"codeberg.org/quickai/server/internal/usage"
)

// SetUserPlan godoc
// @Summary Change a user's plan
// @Description Admin-only endpoint to upgrade or downgrade a user
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param request body SetPlanRequest true "New plan"
// @Success 200 {object} UserPlanResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /api/v1/admin/users/{id}/plan [put]
// @Security BearerAuth
func SetUserPlan(repo UserRepository, mirror PlanMirror) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.Param("id")
		if !errors.IsValidUUID(userID) {
			errors.BadRequest(c, "invalid user id", nil)
			return
		}

		var req SetPlanRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			errors.ValidationError(c, err)
			return
		}

		plan := usage.ParsePlan(req.Plan)

		user, err := repo.SetPlan(c.Request.Context(), userID, plan)
		if stderrors.Is(err, usage.ErrUserNotFound) {
			errors.NotFound(c, "user")
			return
		}

		if err != nil {
			errors.InternalError(c, "failed to update plan", err)
			return
		}

		if mirror != nil {
			if err := mirror.SetPlan(c.Request.Context(), userID, plan); err != nil {
				errors.InternalError(c, "failed to sync plan to usage store", err)
				return
			}
		}

		logger.FromContext(c.Request.Context()).Info("user plan changed",
			"target_user_id", userID,
			"plan", plan,
		)

		c.JSON(http.StatusOK, UserPlanResponse{
			ID:        user.ID,
			Email:     user.Email,
			Plan:      user.Plan,
			FreeUsage: user.FreeUsage,
		})
	}
}
