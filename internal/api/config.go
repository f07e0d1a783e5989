package api

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the API client.
type Config struct {
	BaseURL   string
	TimeoutMs int
	LogCalls  bool
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		BaseURL:   "http://localhost:8000/api/v1",
		TimeoutMs: 15000,
		LogCalls:  false,
	}
}

// LoadConfig reads client configuration from environment variables,
// falling back to defaults for any unset values. A .env file in the
// working directory is loaded first when present.
func LoadConfig() Config {
	_ = godotenv.Load()

	cfg := DefaultConfig()

	if v := os.Getenv("KITCHENCTL_API_URL"); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv("KITCHENCTL_API_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TimeoutMs = n
		}
	}
	if v := os.Getenv("KITCHENCTL_LOG_CALLS"); v != "" {
		cfg.LogCalls, _ = strconv.ParseBool(v)
	}

	return cfg
}
