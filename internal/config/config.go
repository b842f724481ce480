package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port string

	// Optional bearer auth for the catalog endpoints. Empty means public.
	APIKey string

	// Catalog fetching
	FetchTimeout  time.Duration
	MaxFetchBytes int64
	UserAgent     string

	// Sanitize section markup before the structural passes run.
	SanitizeMarkup bool
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8091"),

		APIKey: os.Getenv("CATVIEW_API_KEY"),

		FetchTimeout:  envDuration("CATVIEW_FETCH_TIMEOUT", 30*time.Second),
		MaxFetchBytes: envInt64("CATVIEW_MAX_FETCH_BYTES", 10485760), // 10MB
		UserAgent:     envOr("CATVIEW_USER_AGENT", "catview/1.0"),

		SanitizeMarkup: envBool("CATVIEW_SANITIZE", true),
	}

	if cfg.FetchTimeout <= 0 {
		cfg.FetchTimeout = 30 * time.Second
	}
	if cfg.MaxFetchBytes <= 0 {
		cfg.MaxFetchBytes = 10485760
	}

	return cfg
}

func (c Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("PORT must not be empty")
	}
	if _, err := strconv.Atoi(c.Port); err != nil {
		return fmt.Errorf("PORT must be numeric: %q", c.Port)
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
