package main

import (
	"fmt"

	"github.com/redis/go-redis/v9"

	"codeberg.org/quickai/server/internal/config"
	"codeberg.org/quickai/server/internal/imaging"
	"codeberg.org/quickai/server/internal/llm"
	"codeberg.org/quickai/server/internal/logger"
	"codeberg.org/quickai/server/internal/retry"
	"codeberg.org/quickai/server/internal/studio"
	"codeberg.org/quickai/server/internal/usage"
	"codeberg.org/quickai/server/quickai/creations"
	"codeberg.org/quickai/server/quickai/users"
)

// creates the usage gate, the external clients and the generation service
func InitializeServices(cfg *config.Config, userRepo *users.Repository, creationRepo *creations.Repository, rdb *redis.Client) (*Services, error) {
	var store usage.Store = userRepo
	var redisUsage *usage.RedisStore

	if cfg.Usage.Store == "redis" {
		if rdb == nil {
			return nil, fmt.Errorf("redis usage store requires REDIS_URL")
		}

		redisUsage = usage.NewRedisStore(rdb)
		store = redisUsage
	}

	gate := usage.NewGate(store,
		usage.WithFreeLimit(cfg.Usage.FreeLimit),
		usage.WithStrict(cfg.Usage.Strict),
	)

	text, err := llm.NewTextGenerator(&llm.Config{
		Provider: llm.Provider(cfg.LLM.Provider),
		APIKey:   cfg.LLM.APIKey,
		BaseURL:  cfg.LLM.BaseURL,
		Model:    cfg.LLM.Model,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create text generator: %w", err)
	}

	var images imaging.Generator
	if cfg.Imaging.ClipdropAPIKey != "" {
		images = imaging.NewClipdropClient(cfg.Imaging.ClipdropAPIKey)
	} else {
		logger.Warn("CLIPDROP_API_KEY not set, image generation disabled")
	}

	var host imaging.Host
	if cfg.Imaging.CloudinaryURL != "" {
		cloudinary, err := imaging.NewCloudinaryClient(cfg.Imaging.CloudinaryURL)
		if err != nil {
			return nil, err
		}

		host = cloudinary
	} else {
		logger.Warn("CLOUDINARY_URL not set, image hosting disabled")
	}

	svc := studio.NewService(studio.Config{
		Gate:      gate,
		Text:      text,
		Images:    images,
		Host:      host,
		Creations: creationRepo,
		Retry: &retry.Policy{
			MaxRetries:   cfg.Retry.MaxRetries,
			InitialDelay: cfg.Retry.InitialDelay,
			Retryable:    retry.IsRateLimited,
			Sleep:        retry.Sleep,
		},
	})

	logger.Info("services initialized",
		"llm_provider", cfg.LLM.Provider,
		"llm_model", text.Model(),
		"usage_store", cfg.Usage.Store,
		"free_limit", gate.FreeLimit(),
		"strict", gate.Strict(),
	)

	return &Services{
		Gate:       gate,
		RedisUsage: redisUsage,
		Studio:     svc,
	}, nil
}
