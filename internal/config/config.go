// Package config defines the stund configuration file and its on-disk location.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	pkgconfig "github.com/viklund/stund/pkg/config"
)

// Config represents the application configuration.
type Config struct {
	Database string `yaml:"database"`
	Index    string `yaml:"index"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Database, validation.Required),
		validation.Field(&c.Index, validation.Required),
	)
}

// DefaultPath returns the per-user config file location.
func DefaultPath() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("config: locate user config dir: %w", err)
	}
	return filepath.Join(base, "stund", "config.yaml"), nil
}

// NewDefault returns the configuration used when none exists yet. The
// checkpoint database and the search index live next to the config file.
func NewDefault(configPath string) *Config {
	dir := filepath.Dir(configPath)
	return &Config{
		Database: filepath.Join(dir, "database.json"),
		Index:    filepath.Join(dir, "index.db"),
	}
}

// Load reads the configuration at path. An empty path means the default
// per-user location, which is materialized with default values on first
// use. An explicit path that does not exist is an error.
func Load(path string) (*Config, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p

		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			cfg := NewDefault(path)
			if err := pkgconfig.Write(path, cfg); err != nil {
				return nil, err
			}
			return cfg, nil
		}
	}

	var cfg Config
	if err := pkgconfig.Load(path, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes cfg to path, or to the default location when path is empty.
func Save(path string, cfg *Config) error {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return err
		}
		path = p
	}
	return pkgconfig.Write(path, cfg)
}
