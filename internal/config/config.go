// Package config loads service configuration from the environment.
package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds the widget service settings.
type Config struct {
	// FeedURL is the upstream price feed endpoint.
	FeedURL string `envconfig:"FEED_URL" default:"https://interview.switcheo.com/prices.json"`
	// FeedTimeout bounds a single feed fetch.
	FeedTimeout time.Duration `envconfig:"FEED_TIMEOUT" default:"10s"`
	// RefreshInterval is how often the price table is refetched.
	RefreshInterval time.Duration `envconfig:"REFRESH_INTERVAL" default:"5m"`
	// ListenAddr is the HTTP listen address for /ws, /metrics, /healthz.
	ListenAddr string `envconfig:"LISTEN_ADDR" default:":8080"`
}

// Load reads the configuration from environment variables, merging in
// a .env file when one exists. A missing .env is not an error.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
