package admin

import (
	"github.com/gin-gonic/gin"

	"codeberg.org/quickai/server/internal/auth"
)

// mirror may be nil when usage is read straight from postgres
func RegisterRoutes(router *gin.RouterGroup, repo UserRepository, mirror PlanMirror, issuer *auth.TokenIssuer) {
	admin := router.Group("/admin")
	admin.Use(issuer.Middleware(), auth.AdminMiddleware())

	admin.PUT("/users/:id/plan", SetUserPlan(repo, mirror))
}
