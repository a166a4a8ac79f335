package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix prefixes every environment variable read by Load
const EnvPrefix = "CORONA"

// Config holds runtime settings
type Config struct {
	LogLevel  string `envconfig:"LOG_LEVEL" default:"warn" validate:"oneof=debug info warn error"`
	Format    string `envconfig:"FORMAT" default:"csv" validate:"oneof=csv json"`
	Layout    string `envconfig:"LAYOUT" default:"auto" validate:"oneof=auto tbody nested"`
	RulesFile string `envconfig:"RULES_FILE"`
}

var validate = validator.New()

// Load reads a .env file from the working directory if present, then the
// CORONA_* environment variables, applying defaults where unset.
// The result is not validated so flags can still override bad values.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	cfg.Normalize()
	return &cfg, nil
}

// Normalize lower-cases the enum-like settings
func (c *Config) Normalize() {
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	c.Format = strings.ToLower(strings.TrimSpace(c.Format))
	c.Layout = strings.ToLower(strings.TrimSpace(c.Layout))
}

// Validate checks enum-like settings
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}
