// Package config loads the landing server configuration from YAML with
// environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/vcrobe/landing/appcomponents/pages"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("config: invalid")

// Environment variables that override file values.
const (
	EnvAddr     = "LANDING_ADDR"
	EnvRevision = "LANDING_REVISION"
	EnvDev      = "LANDING_DEV"
	EnvLogLevel = "LANDING_LOG_LEVEL"
	EnvReadings = "LANDING_READINGS_DB"
)

// Config is the server configuration.
type Config struct {
	Addr            string        `yaml:"addr" json:"addr"`
	Title           string        `yaml:"title" json:"title"`
	Description     string        `yaml:"description" json:"description"`
	Lang            string        `yaml:"lang" json:"lang"`
	Stylesheet      string        `yaml:"stylesheet" json:"stylesheet"`
	Revision        string        `yaml:"revision" json:"revision"`
	Dev             bool          `yaml:"dev" json:"dev"`
	LogLevel        string        `yaml:"log_level" json:"log_level"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" json:"shutdown_timeout"`
	Cache           bool          `yaml:"cache" json:"cache"`
	// ReadingsDB is the SQLite file sensor readings are stored in. Empty
	// disables the sensor gateway.
	ReadingsDB      string        `yaml:"readings_db" json:"readings_db"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Addr:            ":8080",
		Title:           "Verdant - Smart greenhouse monitoring",
		Description:     "Live climate and soil readings, full history, and automatic irrigation for every bed.",
		Lang:            "en",
		Revision:        "latest",
		LogLevel:        "info",
		ShutdownTimeout: 5 * time.Second,
		Cache:           true,
		ReadingsDB:      "sensor_data.db",
	}
}

// Load reads path over the defaults, applies environment overrides and
// validates the result. A missing file is not an error; an empty path
// skips the file entirely.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
			// defaults only
		case err != nil:
			return Config{}, fmt.Errorf("failed to read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("failed to parse %s: %w", path, err)
			}
		}
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvAddr); ok && v != "" {
		c.Addr = v
	}
	if v, ok := lookup(EnvRevision); ok && v != "" {
		c.Revision = v
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		c.LogLevel = v
	}
	if v, ok := lookup(EnvReadings); ok {
		c.ReadingsDB = v
	}
	if v, ok := lookup(EnvDev); ok && v != "" {
		dev, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q: %v", ErrInvalidConfig, EnvDev, v, err)
		}
		c.Dev = dev
	}
	return nil
}

// Validate checks every field that has a restricted domain.
func (c Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("%w: addr is empty", ErrInvalidConfig)
	}
	if _, err := pages.ParseRevision(c.Revision); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: log_level: %v", ErrInvalidConfig, err)
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("%w: shutdown_timeout must be positive", ErrInvalidConfig)
	}
	return nil
}

// PageRevision returns the configured Home revision. Call after Validate.
func (c Config) PageRevision() pages.Revision {
	rev, err := pages.ParseRevision(c.Revision)
	if err != nil {
		return pages.LatestRevision
	}
	return rev
}
