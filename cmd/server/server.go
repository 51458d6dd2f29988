package main

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"codeberg.org/quickai/server/internal/auth"
	"codeberg.org/quickai/server/internal/config"
	"codeberg.org/quickai/server/internal/logger"
	"codeberg.org/quickai/server/quickai/creations"
	"codeberg.org/quickai/server/quickai/users"
)

const connectTimeout = 10 * time.Second

// creates and configures a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	db, err := openDatabase(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}

	var rdb *redis.Client
	if cfg.RedisURL != "" {
		rdb, err = openRedis(ctx, cfg.RedisURL)
		if err != nil {
			db.Close()
			return nil, err
		}
	}

	closeAll := func() {
		if rdb != nil {
			rdb.Close() //nolint:errcheck,gosec // best-effort cleanup on init failure
		}
		db.Close()
	}

	issuer, err := auth.NewTokenIssuer(cfg.JWTSecret)
	if err != nil {
		closeAll()
		return nil, fmt.Errorf("failed to create token issuer: %w", err)
	}

	// sign-in stays optional; tokens from scripts/gen_test_token.go still work
	var providers []string
	if cfg.OAuth.Enabled() {
		providers, err = auth.InitializeProviders(cfg.OAuth)
		if err != nil {
			logger.ErrorErr(err, "failed to initialize OAuth providers, continuing without sign-in routes")
			providers = nil
		}
	}

	userRepo := users.NewRepository(db)
	creationRepo := creations.NewRepository(db)

	services, err := InitializeServices(cfg, userRepo, creationRepo, rdb)
	if err != nil {
		closeAll()
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	server := &Server{
		db:           db,
		redis:        rdb,
		config:       cfg,
		userRepo:     userRepo,
		creationRepo: creationRepo,
		issuer:       issuer,
		providers:    providers,
		services:     services,
		router:       router,
	}

	if err := RegisterRoutes(router, server); err != nil {
		closeAll()
		return nil, fmt.Errorf("failed to register routes: %w", err)
	}

	return server, nil
}

func openDatabase(ctx context.Context, connString string) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	// keep the pool small; hosted poolers hand out few connections
	poolConfig.MaxConns = 5
	poolConfig.MinConns = 1
	poolConfig.MaxConnLifetime = 30 * time.Minute
	poolConfig.MaxConnIdleTime = 5 * time.Minute
	poolConfig.HealthCheckPeriod = 1 * time.Minute

	// pgbouncer in transaction mode does not support prepared statements
	poolConfig.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeSimpleProtocol

	db, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create database pool: %w", err)
	}

	if err := db.Ping(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

func openRedis(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}

	client := redis.NewClient(opts)

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close() //nolint:errcheck,gosec // best-effort cleanup on init failure
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return client, nil
}

// releases the pool and the redis client
func (s *Server) Close() {
	if s.redis != nil {
		s.redis.Close() //nolint:errcheck,gosec // best-effort cleanup on shutdown
	}

	s.db.Close()
}
