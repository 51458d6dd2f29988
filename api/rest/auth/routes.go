package auth

import (
	"github.com/gin-gonic/gin"

	"codeberg.org/quickai/server/internal/auth"
)

// registers all authentication routes. providers lists the OAuth providers that
// were initialized; with none, only /me is mounted.
func RegisterRoutes(router *gin.RouterGroup, userRepo UserRepository, issuer *auth.TokenIssuer, providers []string) {
	authGroup := router.Group("/auth")
	{
		authGroup.GET("/me", issuer.Middleware(), GetCurrentUserHandler(userRepo))
		authGroup.POST("/logout", LogoutHandler())

		if len(providers) > 0 {
			authGroup.GET("/:provider", BeginAuthHandler(providers))
			authGroup.GET("/:provider/callback", CallbackHandler(userRepo, issuer, providers))
		}
	}
}
