package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("KITCHENCTL_API_URL", "")
	t.Setenv("KITCHENCTL_API_TIMEOUT_MS", "")
	t.Setenv("KITCHENCTL_LOG_CALLS", "")

	cfg := LoadConfig()
	assert.Equal(t, "http://localhost:8000/api/v1", cfg.BaseURL)
	assert.Equal(t, 15000, cfg.TimeoutMs)
	assert.False(t, cfg.LogCalls)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("KITCHENCTL_API_URL", "https://qa.example.com/api/v1")
	t.Setenv("KITCHENCTL_API_TIMEOUT_MS", "3000")
	t.Setenv("KITCHENCTL_LOG_CALLS", "true")

	cfg := LoadConfig()
	assert.Equal(t, "https://qa.example.com/api/v1", cfg.BaseURL)
	assert.Equal(t, 3000, cfg.TimeoutMs)
	assert.True(t, cfg.LogCalls)
}

func TestLoadConfigIgnoresInvalidTimeout(t *testing.T) {
	t.Setenv("KITCHENCTL_API_TIMEOUT_MS", "not-a-number")

	cfg := LoadConfig()
	assert.Equal(t, 15000, cfg.TimeoutMs)
}
