// Package config loads and validates environment variables at startup.
// Fail-fast: if a required variable is missing, the process exits with an error.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all runtime configuration for the matching service.
type Config struct {
	Port                 string
	DatabaseURL          string
	RedisURL             string
	AlertIntervalMinutes int // how often the alert evaluation cron fires
	AlertTimeoutSeconds  int // per-alert evaluation budget
}

// Load reads environment variables (after an optional .env file) and returns
// a validated Config.
func Load() (*Config, error) {
	// .env is a local-development convenience; absence is not an error.
	_ = godotenv.Load()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		return nil, fmt.Errorf("REDIS_URL is required")
	}

	interval := 15
	if s := os.Getenv("ALERT_INTERVAL_MINUTES"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 1 {
			return nil, fmt.Errorf("ALERT_INTERVAL_MINUTES must be a positive integer, got %q", s)
		}
		interval = v
	}

	timeout := 30
	if s := os.Getenv("ALERT_TIMEOUT_SECONDS"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 1 {
			return nil, fmt.Errorf("ALERT_TIMEOUT_SECONDS must be a positive integer, got %q", s)
		}
		timeout = v
	}

	port := os.Getenv("MATCHING_PORT")
	if port == "" {
		port = "8083"
	}

	return &Config{
		Port:                 port,
		DatabaseURL:          dbURL,
		RedisURL:             redisURL,
		AlertIntervalMinutes: interval,
		AlertTimeoutSeconds:  timeout,
	}, nil
}
