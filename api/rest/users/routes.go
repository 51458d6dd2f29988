package users

import (
	"github.com/gin-gonic/gin"

	"codeberg.org/quickai/server/internal/auth"
	"codeberg.org/quickai/server/internal/usage"
)

func RegisterRoutes(rg *gin.RouterGroup, repo CreationRepository, issuer *auth.TokenIssuer, gate *usage.Gate) {
	user := rg.Group("/user")
	user.Use(issuer.Middleware()) // all user routes require authentication

	user.GET("/get-user-creations", ListUserCreationsHandler(repo))
	user.GET("/get-published-creations", ListPublishedCreationsHandler(repo))
	user.POST("/toggle-like-creation", ToggleLikeHandler(repo))
	user.GET("/usage", auth.PlanMiddleware(gate), GetUsageHandler(gate))
}
