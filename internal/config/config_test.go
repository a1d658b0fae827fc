package config

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var keys = []string{
	"PORT", "ENV", "STORE", "DATABASE_DSN", "MIGRATE", "JWT_SECRET", "JWT_EXPIRY",
	"GITHUB_API_URL", "GITHUB_TOKEN", "GITHUB_TIMEOUT", "RATE_LIMIT_RPS", "RATE_LIMIT_BURST", "LOG_LEVEL",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "5000", cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "mysql", cfg.Store)
	assert.True(t, cfg.Migrate)
	assert.Equal(t, time.Hour, cfg.JWTExpiry)
	assert.Equal(t, "https://api.github.com", cfg.GitHubAPIURL)
	assert.Equal(t, 10*time.Second, cfg.GitHubTimeout)
	assert.Equal(t, 5.0, cfg.RateLimitRPS)
	assert.Equal(t, 10, cfg.RateLimitBurst)
	assert.Equal(t, zerolog.InfoLevel, cfg.LogLevel)
	assert.False(t, cfg.IsProduction())
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "8080")
	t.Setenv("STORE", "Memory")
	t.Setenv("MIGRATE", "false")
	t.Setenv("JWT_EXPIRY", "30m")
	t.Setenv("GITHUB_API_URL", "http://localhost:9999/")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "memory", cfg.Store)
	assert.False(t, cfg.Migrate)
	assert.Equal(t, 30*time.Minute, cfg.JWTExpiry)
	assert.Equal(t, "http://localhost:9999", cfg.GitHubAPIURL)
	assert.Equal(t, zerolog.DebugLevel, cfg.LogLevel)
}

func TestLoadRejects(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "dev secret in production", env: map[string]string{"ENV": "production"}},
		{name: "unknown store", env: map[string]string{"STORE": "redis"}},
		{name: "bad log level", env: map[string]string{"LOG_LEVEL": "loud"}},
		{name: "non-positive expiry", env: map[string]string{"JWT_EXPIRY": "0s"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestLoadProductionWithSecret(t *testing.T) {
	clearEnv(t)
	t.Setenv("ENV", "production")
	t.Setenv("JWT_SECRET", "a-real-secret")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "a-real-secret", cfg.JWTSecret)
}

func TestLoadProductionDevSecret(t *testing.T) {
	clearEnv(t)
	t.Setenv("ENV", "production")

	_, err := Load()
	assert.ErrorIs(t, err, ErrInsecureSecret)
}
