package main

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"codeberg.org/quickai/server/internal/auth"
	"codeberg.org/quickai/server/internal/config"
	"codeberg.org/quickai/server/internal/studio"
	"codeberg.org/quickai/server/internal/usage"
	"codeberg.org/quickai/server/quickai/creations"
	"codeberg.org/quickai/server/quickai/users"
)

// holds all dependencies and state for the API server
type Server struct {
	db           *pgxpool.Pool
	redis        *redis.Client // nil when REDIS_URL is unset
	config       *config.Config
	userRepo     *users.Repository
	creationRepo *creations.Repository
	issuer       *auth.TokenIssuer
	providers    []string
	services     *Services
	router       *gin.Engine
}

// holds the usage gate and the generation pipeline built on top of it
type Services struct {
	Gate       *usage.Gate
	RedisUsage *usage.RedisStore // set when USAGE_STORE=redis
	Studio     *studio.Service
}
