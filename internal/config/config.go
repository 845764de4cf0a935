// Package config loads server and CLI settings from the environment, an
// optional .env file and explicit overrides, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"dario.cat/mergo"
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds every tunable of the server and CLI.
type Config struct {
	Port            int           `env:"PORT" envDefault:"8080"`
	DBPath          string        `env:"DB_PATH" envDefault:"./data/matrixview.db"`
	StorageKey      string        `env:"STORAGE_KEY" envDefault:"matrixview_notes"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
	AuthSecret      string        `env:"AUTH_SECRET"`
	TokenTTL        time.Duration `env:"TOKEN_TTL" envDefault:"720h"`
	Currency        string        `env:"CURRENCY_SYMBOL" envDefault:"₹"`
	Timezone        string        `env:"TIMEZONE" envDefault:"Local"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// Load reads envFile if it exists, parses the environment and applies the
// non-zero fields of overrides on top. An empty envFile skips the file.
func Load(envFile string, overrides *Config) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("error loading %s: %w", envFile, err)
		}
	}

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("error getting env configs: %w", err)
	}

	if overrides != nil {
		if err := mergo.Merge(&cfg, *overrides, mergo.WithOverride); err != nil {
			return nil, fmt.Errorf("error merging configs: %w", err)
		}
	}

	return &cfg, cfg.Validate()
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	var errs []error

	if c.Port < 1 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("invalid port %d", c.Port))
	}
	if strings.TrimSpace(c.DBPath) == "" {
		errs = append(errs, errors.New("db path is required"))
	}
	if strings.TrimSpace(c.StorageKey) == "" {
		errs = append(errs, errors.New("storage key is required"))
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("invalid log level %q", c.LogLevel))
	}
	if c.TokenTTL <= 0 {
		errs = append(errs, fmt.Errorf("invalid token ttl %s", c.TokenTTL))
	}
	if _, err := c.Location(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// Location resolves Timezone. "Local" and empty mean the host zone.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// AuthEnabled reports whether RPCs require a bearer token.
func (c *Config) AuthEnabled() bool {
	return c.AuthSecret != ""
}
