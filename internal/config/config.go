// Package config loads igpost settings from an optional YAML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/pfrederiksen/igpost/internal/logger"
	"github.com/pfrederiksen/igpost/internal/post"
	"github.com/pfrederiksen/igpost/internal/scraper"
	"gopkg.in/yaml.v3"
)

const (
	DefaultUserAgent  = scraper.UserAgent
	DefaultAccept     = scraper.Accept
	DefaultTimeoutSec = int(scraper.Timeout / time.Second)
	DefaultLogLevel   = "warn"
)

// Configuration validation errors.
var (
	ErrMissingUserAgent   = errors.New("http.user_agent is required")
	ErrMissingAccept      = errors.New("http.accept is required")
	ErrInvalidTimeout     = errors.New("http.timeout_sec must be at least 1")
	ErrInvalidMinInterval = errors.New("http.min_interval_ms must be non-negative")
	ErrMissingRegionLabel = errors.New("region label is required")
	ErrDuplicateRegion    = errors.New("region label is duplicated")
	ErrNoRegionKeywords   = errors.New("region needs at least one keyword")
	ErrEmptyKeyword       = errors.New("region keyword must not be empty")
	ErrUnknownDefault     = errors.New("regions.default must be one of the region labels")
	ErrInvalidLogLevel    = errors.New("logging.level must be one of: debug, info, warn, error")
)

// Config represents the complete igpost configuration.
type Config struct {
	HTTP    HTTPConfig    `yaml:"http"`
	Regions RegionsConfig `yaml:"regions"`
	Logging LoggingConfig `yaml:"logging"`
}

// HTTPConfig controls how post pages are fetched.
type HTTPConfig struct {
	UserAgent     string `yaml:"user_agent"`
	Accept        string `yaml:"accept"`
	TimeoutSec    int    `yaml:"timeout_sec"`
	MinIntervalMs int    `yaml:"min_interval_ms"`
}

// RegionsConfig overrides the built-in region table. An empty Table keeps the
// built-in keywords.
type RegionsConfig struct {
	Default string        `yaml:"default"`
	Table   []post.Region `yaml:"table"`
}

// LoggingConfig defines logging behavior.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		HTTP: HTTPConfig{
			UserAgent:  DefaultUserAgent,
			Accept:     DefaultAccept,
			TimeoutSec: DefaultTimeoutSec,
		},
		Regions: RegionsConfig{
			Default: post.DefaultRegion,
		},
		Logging: LoggingConfig{
			Level: DefaultLogLevel,
		},
	}
}

// Load reads a YAML file on top of the defaults and validates the result.
// Keys missing from the file keep their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.HTTP.UserAgent == "" {
		return ErrMissingUserAgent
	}

	if c.HTTP.Accept == "" {
		return ErrMissingAccept
	}

	if c.HTTP.TimeoutSec < 1 {
		return ErrInvalidTimeout
	}

	if c.HTTP.MinIntervalMs < 0 {
		return ErrInvalidMinInterval
	}

	seen := make(map[string]bool)
	for i, r := range c.Regions.Table {
		if r.Label == "" {
			return fmt.Errorf("%w: regions.table[%d]", ErrMissingRegionLabel, i)
		}
		if seen[r.Label] {
			return fmt.Errorf("%w: %s", ErrDuplicateRegion, r.Label)
		}
		seen[r.Label] = true

		if len(r.Keywords) == 0 {
			return fmt.Errorf("%w: %s", ErrNoRegionKeywords, r.Label)
		}
		for _, k := range r.Keywords {
			if k == "" {
				return fmt.Errorf("%w: %s", ErrEmptyKeyword, r.Label)
			}
		}
	}

	if len(c.Regions.Table) == 0 {
		for _, label := range post.DefaultRegions().Labels() {
			seen[label] = true
		}
	}
	if !seen[c.Regions.Default] {
		return fmt.Errorf("%w: %q", ErrUnknownDefault, c.Regions.Default)
	}

	if _, ok := logger.ParseLevel(c.Logging.Level); !ok {
		return ErrInvalidLogLevel
	}

	return nil
}

// Timeout returns the HTTP timeout as a duration
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.HTTP.TimeoutSec) * time.Second
}

// MinInterval returns the politeness delay between fetches; zero disables it
func (c *Config) MinInterval() time.Duration {
	return time.Duration(c.HTTP.MinIntervalMs) * time.Millisecond
}

// RegionTable builds the region table, falling back to the built-in table
// when none is configured.
func (c *Config) RegionTable() *post.RegionTable {
	rt := post.DefaultRegions()
	if len(c.Regions.Table) > 0 {
		rt.Regions = append([]post.Region(nil), c.Regions.Table...)
	}
	if c.Regions.Default != "" {
		rt.Default = c.Regions.Default
	}
	return rt
}

// LogLevel returns the configured logger level
func (c *Config) LogLevel() logger.Level {
	level, ok := logger.ParseLevel(c.Logging.Level)
	if !ok {
		return logger.LevelWarn
	}
	return level
}
