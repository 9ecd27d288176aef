package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type fileConfig struct {
	DatabaseURL  string `yaml:"database_url"`
	RedisURL     string `yaml:"redis_url"`
	TMDBAPIKey   string `yaml:"tmdb_api_key"`
	TMDBBaseURL  string `yaml:"tmdb_base_url"`
	TMDBLanguage string `yaml:"tmdb_language"`
	TMDBTimeout  string `yaml:"tmdb_timeout"`
	LogMode      string `yaml:"log_mode"`
}

// LoadFromFile loads config from a YAML file. database_url and
// tmdb_api_key are required.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f fileConfig
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	if f.DatabaseURL == "" {
		return nil, ErrMissingDatabaseURL
	}
	if f.TMDBAPIKey == "" {
		return nil, ErrMissingAPIKey
	}
	c := &Config{
		DatabaseURL:  f.DatabaseURL,
		RedisURL:     f.RedisURL,
		TMDBAPIKey:   f.TMDBAPIKey,
		TMDBBaseURL:  f.TMDBBaseURL,
		TMDBLanguage: f.TMDBLanguage,
		LogMode:      f.LogMode,
	}
	if f.TMDBTimeout != "" {
		if d, err := time.ParseDuration(f.TMDBTimeout); err == nil {
			c.TMDBTimeout = d
		}
	}
	applyDefaults(c)
	return c, nil
}
