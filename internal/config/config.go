// Package config loads service configuration from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds settings shared by the server and the maintenance commands
type Config struct {
	Port           string        `env:"PORT"            envDefault:"8080"`
	DBPath         string        `env:"DB_PATH"         envDefault:"./shopkeep.db"`
	BlobURL        string        `env:"BLOB_URL"`
	BlobToken      string        `env:"BLOB_TOKEN"`
	BlobTimeout    time.Duration `env:"BLOB_TIMEOUT"    envDefault:"10s"`
	GMSecret       string        `env:"GM_TOKEN_SECRET"`
	GMTokenTTL     time.Duration `env:"GM_TOKEN_TTL"    envDefault:"720h"`
	AllowedOrigins []string      `env:"ALLOWED_ORIGINS" envDefault:"http://localhost:*,https://*.owlbear.rodeo" envSeparator:","`
}

// Load reads Config from environment variables
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// UsesBlobStore reports whether presets and custom items live in the blob store
func (c Config) UsesBlobStore() bool {
	return c.BlobURL != ""
}
