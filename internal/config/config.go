// Package config loads client configuration from the environment, with an
// optional .env file for local development.
package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds the configuration values for the client.
type Config struct {
	// BaseURL is the backend's root address; the API lives under /api.
	BaseURL string `envconfig:"BLOG_BASE_URL" default:"http://localhost:8080"`

	// StatePath is the JSON file holding the token and display cache.
	StatePath string `envconfig:"BLOG_STATE_PATH" default:"01blog_state.json"`

	// CachePath is the local SQLite read cache.
	CachePath string `envconfig:"BLOG_CACHE_PATH" default:"01blog_cache.db"`

	LogLevel  string `envconfig:"BLOG_LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"BLOG_LOG_FORMAT" default:"console"`

	// Timeout bounds every API call.
	Timeout time.Duration `envconfig:"BLOG_HTTP_TIMEOUT" default:"10s"`
}

// Load reads the environment (and .env, when present) into a Config.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("process environment: %w", err)
	}
	return &cfg, nil
}
