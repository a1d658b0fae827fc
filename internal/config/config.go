package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

const devSecret = "dev-secret-change-in-production"

var ErrInsecureSecret = errors.New("JWT_SECRET must be set in production environment")

type Config struct {
	Port           string
	Env            string
	Store          string
	DatabaseDSN    string
	Migrate        bool
	JWTSecret      string
	JWTExpiry      time.Duration
	GitHubAPIURL   string
	GitHubToken    string
	GitHubTimeout  time.Duration
	RateLimitRPS   float64
	RateLimitBurst int
	LogLevel       zerolog.Level
}

// Load reads the configuration from environment variables, falling back to defaults.
func Load() (Config, error) {
	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("PORT", "5000")
	v.SetDefault("ENV", "development")
	v.SetDefault("STORE", "mysql")
	v.SetDefault("DATABASE_DSN", "root:password@tcp(127.0.0.1:3306)/devconnector?parseTime=true")
	v.SetDefault("MIGRATE", true)
	v.SetDefault("JWT_SECRET", devSecret)
	v.SetDefault("JWT_EXPIRY", time.Hour)
	v.SetDefault("GITHUB_API_URL", "https://api.github.com")
	v.SetDefault("GITHUB_TOKEN", "")
	v.SetDefault("GITHUB_TIMEOUT", 10*time.Second)
	v.SetDefault("RATE_LIMIT_RPS", 5)
	v.SetDefault("RATE_LIMIT_BURST", 10)
	v.SetDefault("LOG_LEVEL", "info")

	cfg := Config{
		Port:           v.GetString("PORT"),
		Env:            v.GetString("ENV"),
		Store:          strings.ToLower(v.GetString("STORE")),
		DatabaseDSN:    v.GetString("DATABASE_DSN"),
		Migrate:        v.GetBool("MIGRATE"),
		JWTSecret:      v.GetString("JWT_SECRET"),
		JWTExpiry:      v.GetDuration("JWT_EXPIRY"),
		GitHubAPIURL:   strings.TrimRight(v.GetString("GITHUB_API_URL"), "/"),
		GitHubToken:    v.GetString("GITHUB_TOKEN"),
		GitHubTimeout:  v.GetDuration("GITHUB_TIMEOUT"),
		RateLimitRPS:   v.GetFloat64("RATE_LIMIT_RPS"),
		RateLimitBurst: v.GetInt("RATE_LIMIT_BURST"),
	}

	level, err := zerolog.ParseLevel(v.GetString("LOG_LEVEL"))
	if err != nil {
		return Config{}, fmt.Errorf("LOG_LEVEL: %w", err)
	}
	cfg.LogLevel = level

	if cfg.Store != "mysql" && cfg.Store != "memory" {
		return Config{}, fmt.Errorf("STORE must be mysql or memory, got %q", cfg.Store)
	}
	if cfg.JWTExpiry <= 0 {
		return Config{}, fmt.Errorf("JWT_EXPIRY must be positive, got %s", cfg.JWTExpiry)
	}
	if cfg.IsProduction() && cfg.JWTSecret == devSecret {
		return Config{}, ErrInsecureSecret
	}

	return cfg, nil
}

// IsProduction reports whether the server runs with ENV=production.
func (c Config) IsProduction() bool {
	return c.Env == "production"
}
