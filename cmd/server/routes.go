package main

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/swaggo/swag"

	"codeberg.org/quickai/server/api/rest/admin"
	"codeberg.org/quickai/server/api/rest/auth"
	"codeberg.org/quickai/server/api/rest/generate"
	"codeberg.org/quickai/server/api/rest/health"
	"codeberg.org/quickai/server/api/rest/users"
	_ "codeberg.org/quickai/server/docs"
	"codeberg.org/quickai/server/internal/metrics"
	"codeberg.org/quickai/server/internal/ratelimit"
)

// sets up all API routes and middleware
func RegisterRoutes(router *gin.Engine, server *Server) error {
	router.Use(
		gin.Recovery(),
		RequestIDMiddleware(),
		RequestLoggerMiddleware(),
		metrics.Middleware(),
		CORSMiddleware(server.config.AllowedOrigins),
	)

	deps := map[string]health.Pinger{"postgres": server.db}
	if server.redis != nil {
		deps["redis"] = health.PingerFunc(func(ctx context.Context) error {
			return server.redis.Ping(ctx).Err()
		})
	}

	router.GET("/", health.RootHandler)
	router.GET("/health", health.Handler(deps))
	router.GET("/metrics", metrics.Handler())

	limiter, err := ratelimit.Middleware(server.config.RateLimit, server.redis)
	if err != nil {
		return err
	}

	// only set when the redis usage store is active
	var mirror admin.PlanMirror
	if server.services.RedisUsage != nil {
		mirror = server.services.RedisUsage
	}

	v1 := router.Group("/api/v1")

	{
		v1.GET("/ping", health.PingHandler)
		v1.GET("/docs/doc.json", docsHandler)

		auth.RegisterRoutes(v1, server.userRepo, server.issuer, server.providers)
		generate.RegisterRoutes(v1, server.services.Studio, server.issuer, server.services.Gate, limiter)
		users.RegisterRoutes(v1, server.creationRepo, server.issuer, server.services.Gate)
		admin.RegisterRoutes(v1, server.userRepo, mirror, server.issuer)
	}

	return nil
}

func docsHandler(c *gin.Context) {
	doc, err := swag.ReadDoc()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "docs unavailable"})
		return
	}

	c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(doc))
}
