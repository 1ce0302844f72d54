// Package config provides configuration loading and validation for the recommender.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// Defaults used when neither the config file nor the environment sets a value.
const (
	DefaultRedisPrefix = "recommender"
	DefaultPort        = 8080
	DefaultThreshold   = 0.45
	DefaultTagWeight   = 30.0
	DefaultCacheSize   = 4096
	DefaultConcurrency = 4
	DefaultLogLevel    = "info"
	DefaultLogFormat   = "console"
)

// Environment variables read by ApplyEnv.
const (
	EnvModelPath   = "RECOMMENDER_MODEL_PATH"
	EnvRedisURL    = "REDIS_URL"
	EnvDatabaseURL = "DATABASE_URL"
	EnvPort        = "PORT"
	EnvLogLevel    = "LOG_LEVEL"
	EnvLogFormat   = "LOG_FORMAT"
)

// Config represents the recommender configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Vector sources. At most one may be set.
	ModelPath   string `json:"model_path,omitempty"`   // Path to a text vector model
	RedisURL    string `json:"redis_url,omitempty"`    // Redis holding imported vectors
	RedisPrefix string `json:"redis_prefix,omitempty"` // Key prefix for imported vectors

	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL
	Port        int    `json:"port,omitempty"`

	// Ranking
	Threshold   *float64 `json:"threshold,omitempty"`   // Minimum tag similarity; 0 is a valid value
	TagWeight   float64  `json:"tag_weight,omitempty"`  // Weight applied to both tag vectors
	Limit       int      `json:"limit,omitempty"`       // Maximum recommendations returned; 0 means all
	CacheSize   int      `json:"cache_size,omitempty"`  // LRU size in front of Redis lookups
	Concurrency int      `json:"concurrency,omitempty"` // Parallel workers for batch ranking

	LogLevel  string `json:"log_level,omitempty"`
	LogFormat string `json:"log_format,omitempty"` // "console" or "json"
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	threshold := DefaultThreshold
	return Config{
		RedisPrefix: DefaultRedisPrefix,
		Port:        DefaultPort,
		Threshold:   &threshold,
		TagWeight:   DefaultTagWeight,
		CacheSize:   DefaultCacheSize,
		Concurrency: DefaultConcurrency,
		LogLevel:    DefaultLogLevel,
		LogFormat:   DefaultLogFormat,
	}
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// ApplyEnv overrides fields with the non-empty environment variables
// returned by getenv.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	if v := getenv(EnvModelPath); v != "" {
		c.ModelPath = v
	}
	if v := getenv(EnvRedisURL); v != "" {
		c.RedisURL = v
	}
	if v := getenv(EnvDatabaseURL); v != "" {
		c.DatabaseURL = v
	}
	if v := getenv(EnvPort); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config error: invalid %s %q: %w", EnvPort, v, err)
		}
		c.Port = port
	}
	if v := getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
	if v := getenv(EnvLogFormat); v != "" {
		c.LogFormat = v
	}
	return nil
}

// Validate checks that the configuration has valid values.
// Note: This doesn't require a vector source; commands that rank call
// RequireVectorSource after flags are merged.
func (c *Config) Validate() error {
	if c.ModelPath != "" && c.RedisURL != "" {
		return fmt.Errorf("config error: 'model_path' and 'redis_url' are mutually exclusive")
	}

	if c.Threshold != nil && (*c.Threshold < -1 || *c.Threshold > 1) {
		return fmt.Errorf("config error: 'threshold' must be between -1 and 1, got %g", *c.Threshold)
	}
	if c.TagWeight < 0 {
		return fmt.Errorf("config error: 'tag_weight' must be positive")
	}
	if c.Limit < 0 {
		return fmt.Errorf("config error: 'limit' must be non-negative")
	}
	if c.CacheSize < 0 {
		return fmt.Errorf("config error: 'cache_size' must be non-negative")
	}
	if c.Concurrency < 0 {
		return fmt.Errorf("config error: 'concurrency' must be non-negative")
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}
	if c.LogFormat != "" && c.LogFormat != "console" && c.LogFormat != "json" {
		return fmt.Errorf("config error: 'log_format' must be \"console\" or \"json\"")
	}

	if c.ModelPath != "" {
		if _, err := os.Stat(c.ModelPath); os.IsNotExist(err) {
			return fmt.Errorf("config error: model file not found: %s", c.ModelPath)
		}
	}

	return nil
}

// RequireVectorSource reports an error unless exactly one vector source is set.
func (c *Config) RequireVectorSource() error {
	if c.ModelPath == "" && c.RedisURL == "" {
		return fmt.Errorf("config error: one of 'model_path' or 'redis_url' is required")
	}
	if c.ModelPath != "" && c.RedisURL != "" {
		return fmt.Errorf("config error: 'model_path' and 'redis_url' are mutually exclusive")
	}
	return nil
}

// RankThreshold returns the configured threshold or DefaultThreshold.
func (c *Config) RankThreshold() float64 {
	if c.Threshold == nil {
		return DefaultThreshold
	}
	return *c.Threshold
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.ModelPath == "" {
		result.ModelPath = defaults.ModelPath
	}
	if result.RedisURL == "" {
		result.RedisURL = defaults.RedisURL
	}
	if result.RedisPrefix == "" {
		result.RedisPrefix = defaults.RedisPrefix
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.LogLevel == "" {
		result.LogLevel = defaults.LogLevel
	}
	if result.LogFormat == "" {
		result.LogFormat = defaults.LogFormat
	}

	// Numeric fields: use default if zero
	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.TagWeight == 0 {
		result.TagWeight = defaults.TagWeight
	}
	if result.Limit == 0 {
		result.Limit = defaults.Limit
	}
	if result.CacheSize == 0 {
		result.CacheSize = defaults.CacheSize
	}
	if result.Concurrency == 0 {
		result.Concurrency = defaults.Concurrency
	}

	// Threshold is a pointer so an explicit 0 survives the merge
	if result.Threshold == nil && defaults.Threshold != nil {
		threshold := *defaults.Threshold
		result.Threshold = &threshold
	}

	return result
}
