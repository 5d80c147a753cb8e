// Package config provides configuration loading and structs for the
// talentview server.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application.
type Config struct {
	Debug   bool          `yaml:"debug"`
	Server  ServerConfig  `yaml:"server"`
	Auth    AuthConfig    `yaml:"auth"`
	Storage StorageConfig `yaml:"storage"`
	Seed    SeedConfig    `yaml:"seed"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// AuthConfig holds token signing settings. TokenTTL is a Go duration
// string, e.g. "12h".
type AuthConfig struct {
	Secret   string `yaml:"secret"`
	Issuer   string `yaml:"issuer"`
	TokenTTL string `yaml:"token_ttl"`
}

// TTL parses TokenTTL, falling back to 12 hours on an empty or malformed
// value.
func (a AuthConfig) TTL() time.Duration {
	if a.TokenTTL == "" {
		return 12 * time.Hour
	}
	d, err := time.ParseDuration(a.TokenTTL)
	if err != nil {
		return 12 * time.Hour
	}
	return d
}

// StorageConfig selects the record store backend. Driver is "memory"
// (default, fixture-seeded) or "sqlite".
type StorageConfig struct {
	Driver       string `yaml:"driver"`
	DatabasePath string `yaml:"database_path"`
}

// SeedConfig points at the YAML fixture file. When Path is empty the
// built-in demo dataset is used. Reload re-reads the file into the memory
// store whenever it changes.
type SeedConfig struct {
	Path   string `yaml:"path"`
	Reload bool   `yaml:"reload"`
}

// Load reads and parses the config file at path, expands paths, and applies
// defaults. Returns an error if the file cannot be read or parsed.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	ApplyDefaults(&cfg)

	configDir := filepath.Dir(path)
	cfg.Storage.DatabasePath = expandPath(cfg.Storage.DatabasePath, configDir)
	if cfg.Seed.Path != "" {
		cfg.Seed.Path = expandPath(cfg.Seed.Path, configDir)
	}

	return &cfg, nil
}

// expandPath converts a path to absolute. Paths starting with "./" are
// relative to configDir; other relative paths are relative to the home
// directory.
func expandPath(path string, configDir string) string {
	if filepath.IsAbs(path) {
		return path
	}
	if strings.HasPrefix(path, "./") || path == "." {
		return filepath.Join(configDir, path)
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, path)
	}
	return path
}
