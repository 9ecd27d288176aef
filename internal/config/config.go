package config

import (
	"errors"
	"os"
	"time"
)

// Required settings that have no usable default.
var (
	ErrMissingDatabaseURL = errors.New("DATABASE_URL is required")
	ErrMissingAPIKey      = errors.New("TMDB_API_KEY is required")
)

// Config holds application configuration: database, optional Redis, and the
// TMDB client settings.
type Config struct {
	DatabaseURL  string
	RedisURL     string
	TMDBAPIKey   string
	TMDBBaseURL  string
	TMDBLanguage string
	TMDBTimeout  time.Duration
	LogMode      string // "dev" or "prod"
}

// Load builds config from environment variables.
// If DATABASE_URL is not set, Load tries to load .env.local and .env from
// the current directory first. DATABASE_URL and TMDB_API_KEY are required;
// everything else has a default.
func Load() (*Config, error) {
	if os.Getenv("DATABASE_URL") == "" {
		loadEnvFiles()
	}
	c := &Config{
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		RedisURL:     os.Getenv("REDIS_URL"),
		TMDBAPIKey:   os.Getenv("TMDB_API_KEY"),
		TMDBBaseURL:  os.Getenv("TMDB_BASE_URL"),
		TMDBLanguage: os.Getenv("TMDB_LANGUAGE"),
		TMDBTimeout:  10 * time.Second,
		LogMode:      os.Getenv("LOG_MODE"),
	}
	if s := os.Getenv("TMDB_TIMEOUT"); s != "" {
		if d, err := time.ParseDuration(s); err == nil {
			c.TMDBTimeout = d
		}
	}
	applyDefaults(c)
	if c.DatabaseURL == "" {
		return nil, ErrMissingDatabaseURL
	}
	if c.TMDBAPIKey == "" {
		return nil, ErrMissingAPIKey
	}
	return c, nil
}

func applyDefaults(c *Config) {
	if c.TMDBLanguage == "" {
		c.TMDBLanguage = "en-US"
	}
	if c.TMDBTimeout <= 0 {
		c.TMDBTimeout = 10 * time.Second
	}
	if c.LogMode == "" {
		c.LogMode = "dev"
	}
}
