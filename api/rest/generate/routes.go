package generate

import (
	"github.com/gin-gonic/gin"

	"codeberg.org/quickai/server/internal/auth"
	"codeberg.org/quickai/server/internal/usage"
)

// registers the generation routes; limiter runs after auth so it keys on the user
func RegisterRoutes(rg *gin.RouterGroup, svc Studio, issuer *auth.TokenIssuer, gate *usage.Gate, limiter gin.HandlerFunc) {
	ai := rg.Group("/ai")
	ai.Use(issuer.Middleware(), auth.PlanMiddleware(gate))

	if limiter != nil {
		ai.Use(limiter)
	}

	ai.POST("/generate-article", GenerateArticleHandler(svc))
	ai.POST("/generate-blog-title", GenerateBlogTitleHandler(svc))
	ai.POST("/generate-image", GenerateImageHandler(svc))
	ai.POST("/remove-image-background", RemoveBackgroundHandler(svc))
	ai.POST("/remove-image-object", RemoveObjectHandler(svc))
	ai.POST("/resume-review", ReviewResumeHandler(svc))
}
