package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// RateLimitConfig indicates how many requests are allowed within a given interval.
type RateLimitConfig struct {
	Requests int
	Interval time.Duration
}

// Config aggregates application-wide configuration values. Constructed once
// per process and immutable thereafter; the orchestrator receives it at
// construction instead of reading the environment ambiently.
type Config struct {
	DatabaseURL      string
	Port             string
	ServiceJWTSecret string
	TokenTTL         time.Duration

	FetchBaseURL  string
	FetchAPIKey   string
	PlacesBaseURL string
	PlacesAPIKey  string

	AnthropicAPIKey string
	AIModel         string

	DialWebhookURL string

	DefaultSearchLimit int
	RateLimitProcess   RateLimitConfig
}

// Load reads configuration from environment variables and applies sane defaults.
func Load() (*Config, error) {
	cfg := &Config{
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		Port:             getEnv("PORT", "8080"),
		ServiceJWTSecret: getEnv("SERVICE_JWT_SECRET", "dev-secret"),
		TokenTTL:         parseDuration(getEnv("SERVICE_JWT_TTL", "1h")),

		FetchBaseURL:  getEnv("FETCH_API_URL", "https://fetch.internal.octobees.com"),
		FetchAPIKey:   os.Getenv("FETCH_API_KEY"),
		PlacesBaseURL: os.Getenv("PLACES_API_URL"),
		PlacesAPIKey:  os.Getenv("PLACES_API_KEY"),

		AnthropicAPIKey: os.Getenv("ANTHROPIC_API_KEY"),
		AIModel:         os.Getenv("AI_MODEL"),

		DialWebhookURL: os.Getenv("DIAL_WEBHOOK_URL"),

		DefaultSearchLimit: parseInt(getEnv("DEFAULT_SEARCH_LIMIT", "20"), 20),
	}

	rl, err := parseRateLimit(getEnv("RATE_LIMIT_PROCESS", "10/min"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_PROCESS value: %w", err)
	}
	cfg.RateLimitProcess = rl

	return cfg, nil
}

func parseRateLimit(value string) (RateLimitConfig, error) {
	parts := strings.Split(value, "/")
	if len(parts) != 2 {
		return RateLimitConfig{}, fmt.Errorf("expected format <requests>/<interval>, got %q", value)
	}

	requests, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || requests <= 0 {
		return RateLimitConfig{}, fmt.Errorf("invalid request count: %v", parts[0])
	}

	unit := strings.ToLower(strings.TrimSpace(parts[1]))
	var interval time.Duration
	switch unit {
	case "s", "sec", "second", "seconds":
		interval = time.Second
	case "m", "min", "minute", "minutes":
		interval = time.Minute
	case "h", "hr", "hour", "hours":
		interval = time.Hour
	default:
		return RateLimitConfig{}, fmt.Errorf("unsupported interval unit: %s", unit)
	}

	return RateLimitConfig{Requests: requests, Interval: interval}, nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return fallback
}

func parseDuration(input string) time.Duration {
	d, err := time.ParseDuration(input)
	if err != nil {
		return time.Hour
	}
	return d
}

func parseInt(input string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
