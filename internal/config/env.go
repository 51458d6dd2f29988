package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultPort              = "8080"
	defaultLLMProvider       = "gemini"
	defaultFreeUsageLimit    = 10
	defaultUsageStore        = "postgres"
	defaultRateLimit         = "60-M"
	defaultRetryMax          = 3
	defaultRetryInitialDelay = 1000 * time.Millisecond
)

// loads configuration from environment variables
func LoadEnvironmentVariables() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		_ = err // not an error - production environments may not have .env file
	}

	return FromEnvironment()
}

// builds the configuration from the current process environment
func FromEnvironment() (*Config, error) {
	databaseURL := os.Getenv("DATABASE_URL")
	jwtSecret := os.Getenv("JWT_SECRET")
	llmAPIKey := os.Getenv("LLM_API_KEY")

	if databaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}

	if jwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable is required")
	}

	if llmAPIKey == "" {
		return nil, fmt.Errorf("LLM_API_KEY environment variable is required")
	}

	usageStore := getString("USAGE_STORE", defaultUsageStore)
	redisURL := os.Getenv("REDIS_URL")

	switch usageStore {
	case "postgres":
	case "redis":
		if redisURL == "" {
			return nil, fmt.Errorf("REDIS_URL is required when USAGE_STORE=redis")
		}
	default:
		return nil, fmt.Errorf("unsupported USAGE_STORE: %s", usageStore)
	}

	return &Config{
		Environment:    getString("ENVIRONMENT", "development"),
		Port:           getString("PORT", defaultPort),
		DatabaseURL:    databaseURL,
		RedisURL:       redisURL,
		JWTSecret:      jwtSecret,
		AllowedOrigins: splitList(os.Getenv("ALLOWED_ORIGINS")),
		LLM: LLMConfig{
			Provider: getString("LLM_PROVIDER", defaultLLMProvider),
			APIKey:   llmAPIKey,
			BaseURL:  os.Getenv("LLM_BASE_URL"),
			Model:    os.Getenv("LLM_MODEL"),
		},
		Imaging: ImagingConfig{
			ClipdropAPIKey: os.Getenv("CLIPDROP_API_KEY"),
			CloudinaryURL:  os.Getenv("CLOUDINARY_URL"),
		},
		Usage: UsageConfig{
			Store:     usageStore,
			FreeLimit: getInt("FREE_USAGE_LIMIT", defaultFreeUsageLimit),
			Strict:    getBool("USAGE_STRICT", false),
		},
		Retry: RetryConfig{
			MaxRetries:   getInt("RETRY_MAX", defaultRetryMax),
			InitialDelay: getMillis("RETRY_INITIAL_DELAY_MS", defaultRetryInitialDelay),
		},
		OAuth: OAuthConfig{
			SessionSecret:      os.Getenv("SESSION_SECRET"),
			BaseURL:            getString("BASE_URL", "http://localhost:"+getString("PORT", defaultPort)),
			FrontendURL:        getString("FRONTEND_URL", "http://localhost:5173"),
			GoogleClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
			GoogleClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
			GitHubClientID:     os.Getenv("GITHUB_CLIENT_ID"),
			GitHubClientSecret: os.Getenv("GITHUB_CLIENT_SECRET"),
		},
		RateLimit: getString("RATE_LIMIT", defaultRateLimit),
	}, nil
}

func getString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}

// invalid or negative values fall back to the default
func getInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}

	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return fallback
	}

	return n
}

func getBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}

	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}

	return b
}

func getMillis(key string, fallback time.Duration) time.Duration {
	ms := getInt(key, -1)
	if ms < 0 {
		return fallback
	}

	return time.Duration(ms) * time.Millisecond
}

func splitList(v string) []string {
	if v == "" {
		return nil
	}

	var out []string

	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}

	return out
}
