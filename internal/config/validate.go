package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

// Validate checks Config for production-critical problems.
// It collects all errors into a single joined error.
func (c *Config) Validate() error {
	var errs []string

	if c.OpenAI.APIKey == "" {
		errs = append(errs, "OPENAI_API_KEY is required")
	}

	if c.DB.Password == "" {
		errs = append(errs, "DB_PASSWORD is required")
	}

	// Port ranges
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Sprintf("SERVER_PORT must be between 1 and 65535, got %d", c.Server.Port))
	}
	if c.DB.Port < 1 || c.DB.Port > 65535 {
		errs = append(errs, fmt.Sprintf("DB_PORT must be between 1 and 65535, got %d", c.DB.Port))
	}
	if c.Redis.Port < 1 || c.Redis.Port > 65535 {
		errs = append(errs, fmt.Sprintf("REDIS_PORT must be between 1 and 65535, got %d", c.Redis.Port))
	}

	if c.Session.TTL <= 0 {
		errs = append(errs, "SESSION_TTL must be positive")
	}
	if c.OpenAI.Timeout <= 0 {
		errs = append(errs, "OPENAI_TIMEOUT must be positive")
	}
	if c.RateLimit.MaxRequests < 1 {
		errs = append(errs, "RATELIMIT_MAX_REQUESTS must be at least 1")
	}

	if c.NATS.Enabled && c.NATS.URL == "" {
		errs = append(errs, "NATS_URL is required when NATS_ENABLED is true")
	}

	for _, o := range c.CORS.AllowedOrigins {
		if o == "*" {
			slog.Warn("CORS_ALLOWED_ORIGINS contains a wildcard, credentials will be disabled")
		}
	}

	if len(errs) > 0 {
		return errors.New("config validation failed:\n  " + strings.Join(errs, "\n  "))
	}
	return nil
}
