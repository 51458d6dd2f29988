package config

import "time"

type Config struct {
	Environment    string
	Port           string
	DatabaseURL    string
	RedisURL       string
	JWTSecret      string
	AllowedOrigins []string

	LLM       LLMConfig
	Imaging   ImagingConfig
	Usage     UsageConfig
	Retry     RetryConfig
	OAuth     OAuthConfig
	RateLimit string // ulule formatted rate, e.g. "60-M"
}

// settings for the text generation provider
type LLMConfig struct {
	Provider string // "gemini", "openai" or "anthropic"
	APIKey   string
	BaseURL  string
	Model    string
}

// settings for the image generation and hosting providers
type ImagingConfig struct {
	ClipdropAPIKey string
	CloudinaryURL  string // cloudinary://<api_key>:<api_secret>@<cloud_name>
}

type UsageConfig struct {
	Store     string // "postgres" or "redis"
	FreeLimit int
	Strict    bool
}

type RetryConfig struct {
	MaxRetries   int
	InitialDelay time.Duration
}

// sign-in settings; OAuth routes are only mounted when SessionSecret is set
type OAuthConfig struct {
	SessionSecret      string
	BaseURL            string // public URL of this server, used for callbacks
	FrontendURL        string // where the browser is sent after sign-in
	GoogleClientID     string
	GoogleClientSecret string
	GitHubClientID     string
	GitHubClientSecret string
}

func (o OAuthConfig) Enabled() bool {
	return o.SessionSecret != ""
}
