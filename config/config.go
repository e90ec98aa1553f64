package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds every externally-configurable value, resolved once at startup.
// Nothing in the codebase reads environment variables after NewConfig returns.
type Config struct {
	Port        string
	Environment string
	DatabaseURL string

	JWTSecret       string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration

	// Upstream hospital channeling API
	ChannelingBaseURL string
	ChannelingAPIKey  string
	ChannelingTimeout time.Duration
}

const (
	EnvironmentDevelopment = "development"
	EnvironmentProduction  = "production"
)

// NewConfig builds the configuration from the environment.
func NewConfig() (*Config, error) {
	cfg := &Config{
		Port:              getEnv("PORT", "3001"),
		Environment:       getEnv("ENVIRONMENT", EnvironmentDevelopment),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		JWTSecret:         getEnv("JWT_SECRET", "dev-only-agent-secret"),
		AccessTokenTTL:    getDurationEnv("ACCESS_TOKEN_TTL_MINUTES", 15) * time.Minute,
		RefreshTokenTTL:   getDurationEnv("REFRESH_TOKEN_TTL_HOURS", 24*7) * time.Hour,
		ChannelingBaseURL: getEnv("CHANNELING_API_URL", "http://localhost:4000/api"),
		ChannelingAPIKey:  os.Getenv("CHANNELING_API_KEY"),
		ChannelingTimeout: getDurationEnv("CHANNELING_TIMEOUT_SECONDS", 20) * time.Second,
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.Environment == EnvironmentProduction && cfg.JWTSecret == "dev-only-agent-secret" {
		return nil, fmt.Errorf("JWT_SECRET must be set in production")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getDurationEnv(key string, fallback int) time.Duration {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil && n > 0 {
			return time.Duration(n)
		}
	}
	return time.Duration(fallback)
}
