// Package config loads namefind settings from a YAML file and supplies
// the defaults used when no file exists.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"namefind/internal/search"
)

// Config represents namefind configuration options
type Config struct {
	// MaxDepth is the deepest directory level explored below each root
	MaxDepth int `yaml:"max_depth"`

	// MaxResults is the soft cap on collected matches
	MaxResults int `yaml:"max_results"`

	// SkipHiddenDirs prevents entering directories whose name starts with "."
	SkipHiddenDirs bool `yaml:"skip_hidden_dirs"`

	// SkipPaths are absolute directory paths that are never entered
	SkipPaths []string `yaml:"skip_paths"`

	// Roots are searched in order; empty means DefaultRoots()
	Roots []string `yaml:"roots"`

	// Workers is the size of the traversal pool (0 = number of CPUs)
	Workers int `yaml:"workers"`

	// Dedupe drops paths found again under an overlapping root
	Dedupe bool `yaml:"dedupe"`

	// LogLevel sets the logging verbosity (debug, info, warn, error)
	LogLevel string `yaml:"log_level"`

	// LogDir is where search.log is written (empty = system temp dir)
	LogDir string `yaml:"log_dir"`
}

// DefaultConfig returns a Config with the built-in search limits
func DefaultConfig() *Config {
	return &Config{
		MaxDepth:       search.DefaultMaxDepth,
		MaxResults:     search.DefaultMaxResults,
		SkipHiddenDirs: true,
		SkipPaths:      append([]string(nil), search.DefaultSkipPaths...),
		Workers:        0,
		Dedupe:         false,
		LogLevel:       "info",
	}
}

// DefaultPath returns the config file location under the user config dir
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(".namefind", "config.yaml")
	}
	return filepath.Join(dir, "namefind", "config.yaml")
}

// DefaultRoots returns the roots searched when none are configured:
// the user's home directory, the filesystem root and /Volumes.
func DefaultRoots() []string {
	roots := make([]string, 0, 3)
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		roots = append(roots, home)
	}
	return append(roots, string(filepath.Separator), "/Volumes")
}

// LoadConfig loads configuration from the specified file path.
// If the file doesn't exist, returns default configuration without error.
// If the file exists but is malformed or invalid, returns an error.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks value ranges
func (c *Config) Validate() error {
	if c.MaxDepth < 0 {
		return fmt.Errorf("max_depth must be >= 0, got %d", c.MaxDepth)
	}
	if c.MaxResults < 1 {
		return fmt.Errorf("max_results must be >= 1, got %d", c.MaxResults)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must be >= 0, got %d", c.Workers)
	}
	if _, err := search.ParseLogLevel(c.LogLevel); err != nil {
		return err
	}
	for _, p := range c.SkipPaths {
		if !filepath.IsAbs(p) {
			return fmt.Errorf("skip path %q is not absolute", p)
		}
	}
	return nil
}

// SearchRoots returns the configured roots, or DefaultRoots() when none are set
func (c *Config) SearchRoots() []string {
	if len(c.Roots) > 0 {
		return c.Roots
	}
	return DefaultRoots()
}

// SearchOptions converts the config into engine options
func (c *Config) SearchOptions() []search.Option {
	return []search.Option{
		search.WithMaxDepth(c.MaxDepth),
		search.WithMaxResults(c.MaxResults),
		search.WithSkipHiddenDirs(c.SkipHiddenDirs),
		search.WithSkipPaths(c.SkipPaths...),
		search.WithWorkers(c.Workers),
		search.WithDedupe(c.Dedupe),
	}
}
