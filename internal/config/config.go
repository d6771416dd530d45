// Package config handles application configuration from environment variables
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Environments accepted in APP_ENV.
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Providers accepted in LLM_PROVIDER.
const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

var defaultModels = map[string]string{
	ProviderOpenAI: "gpt-4",
	ProviderGemini: "gemini-2.5-flash",
}

// Config holds all application configuration
type Config struct {
	Port     string `env:"PORT" envDefault:"5000"`
	Env      string `env:"APP_ENV" envDefault:"development"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	LLM       LLMConfig
	RateLimit RateLimitConfig

	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`
	MaxBodyBytes   int64    `env:"MAX_BODY_BYTES" envDefault:"1048576"`

	// TrustProxyHeaders takes the client address from X-Forwarded-For or
	// X-Real-IP. Only enable it behind a proxy that overwrites those headers.
	TrustProxyHeaders bool `env:"TRUST_PROXY_HEADERS" envDefault:"false"`
}

// LLMConfig selects and configures the generation backend
type LLMConfig struct {
	Provider      string        `env:"LLM_PROVIDER" envDefault:"openai"`
	Model         string        `env:"LLM_MODEL"`
	Timeout       time.Duration `env:"LLM_TIMEOUT" envDefault:"30s"`
	OpenAIKey     string        `env:"OPENAI_API_KEY"`
	OpenAIBaseURL string        `env:"OPENAI_BASE_URL"`
	GeminiKey     string        `env:"GEMINI_API_KEY"`
	GeminiBaseURL string        `env:"GEMINI_BASE_URL"`
}

// RateLimitConfig bounds requests per client on the analyze route
type RateLimitConfig struct {
	RPS   float64 `env:"RATE_LIMIT_RPS" envDefault:"2"`
	Burst int     `env:"RATE_LIMIT_BURST" envDefault:"5"`
}

// Load reads an optional .env file, then the environment
func Load() (*Config, error) {
	// a missing .env is fine; real environment variables win over it
	_ = godotenv.Load()

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	if cfg.LLM.Model == "" {
		cfg.LLM.Model = defaultModels[cfg.LLM.Provider]
	}
	return &cfg, nil
}

// IsProduction reports whether error detail should be hidden from clients
func (c *Config) IsProduction() bool {
	return c.Env == EnvProduction
}

// APIKey returns the key for the selected provider
func (c *Config) APIKey() string {
	if c.LLM.Provider == ProviderGemini {
		return c.LLM.GeminiKey
	}
	return c.LLM.OpenAIKey
}

// BaseURL returns the endpoint override for the selected provider
func (c *Config) BaseURL() string {
	if c.LLM.Provider == ProviderGemini {
		return c.LLM.GeminiBaseURL
	}
	return c.LLM.OpenAIBaseURL
}

// RateLimitEnabled returns true if per-client limiting is configured
func (c *Config) RateLimitEnabled() bool {
	return c.RateLimit.RPS > 0 && c.RateLimit.Burst > 0
}

// Validate ensures the process can serve requests before it starts listening
func (c *Config) Validate() error {
	var errs []error

	switch c.Env {
	case EnvDevelopment, EnvProduction:
	default:
		errs = append(errs, fmt.Errorf("APP_ENV must be %q or %q, got %q", EnvDevelopment, EnvProduction, c.Env))
	}

	switch c.LLM.Provider {
	case ProviderOpenAI:
		if c.LLM.OpenAIKey == "" {
			errs = append(errs, errors.New("OPENAI_API_KEY is required when LLM_PROVIDER=openai"))
		}
	case ProviderGemini:
		if c.LLM.GeminiKey == "" {
			errs = append(errs, errors.New("GEMINI_API_KEY is required when LLM_PROVIDER=gemini"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown LLM_PROVIDER %q", c.LLM.Provider))
	}

	if c.LLM.Model == "" {
		errs = append(errs, errors.New("LLM_MODEL must not be empty"))
	}
	if c.LLM.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("LLM_TIMEOUT must be positive, got %s", c.LLM.Timeout))
	}
	if c.MaxBodyBytes <= 0 {
		errs = append(errs, fmt.Errorf("MAX_BODY_BYTES must be positive, got %d", c.MaxBodyBytes))
	}
	if c.RateLimit.RPS < 0 || c.RateLimit.Burst < 0 {
		errs = append(errs, errors.New("RATE_LIMIT_RPS and RATE_LIMIT_BURST must not be negative"))
	}
	return errors.Join(errs...)
}
