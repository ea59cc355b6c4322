// Package config holds process settings read from the environment.
//
// Every setting has a POLARITY_* environment variable; command-line flags
// override the environment after Load.
package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
)

// Environment variable names.
const (
	EnvLogLevel    = "POLARITY_LOG_LEVEL"
	EnvLogFormat   = "POLARITY_LOG_FORMAT"
	EnvJPEGQuality = "POLARITY_JPEG_QUALITY"
	EnvAssetBase   = "POLARITY_ASSET_BASE"
	EnvCacheName   = "POLARITY_CACHE_NAME"
	EnvCacheSize   = "POLARITY_CACHE_SIZE"
)

// Config is the resolved process configuration.
type Config struct {
	LogLevel    string
	LogFormat   string
	JPEGQuality int

	// AssetBase resolves the relative URLs of the offline asset list.
	AssetBase string
	// CacheName is the versioned name of the current offline cache.
	CacheName string
	// CacheSize bounds the number of entries held by each offline cache.
	CacheSize int
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		LogLevel:    "info",
		LogFormat:   "json",
		JPEGQuality: 90,
		AssetBase:   "http://localhost:8080/",
		CacheName:   "polarity-io-cache-v1",
		CacheSize:   64,
	}
}

// Load reads the configuration from the process environment.
func Load() (*Config, error) {
	return FromEnv(os.LookupEnv)
}

// FromEnv builds a configuration from Default overlaid with the values
// returned by lookup, then validates it.
func FromEnv(lookup func(string) (string, bool)) (*Config, error) {
	cfg := Default()

	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}
	if v, ok := lookup(EnvLogFormat); ok && v != "" {
		cfg.LogFormat = strings.ToLower(v)
	}
	if v, ok := lookup(EnvJPEGQuality); ok && v != "" {
		q, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", EnvJPEGQuality, err)
		}
		cfg.JPEGQuality = q
	}
	if v, ok := lookup(EnvAssetBase); ok && v != "" {
		cfg.AssetBase = v
	}
	if v, ok := lookup(EnvCacheName); ok && v != "" {
		cfg.CacheName = v
	}
	if v, ok := lookup(EnvCacheSize); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", EnvCacheSize, err)
		}
		cfg.CacheSize = n
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	switch c.LogLevel {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("invalid log level %q", c.LogLevel)
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log format %q", c.LogFormat)
	}
	if c.JPEGQuality < 1 || c.JPEGQuality > 100 {
		return fmt.Errorf("invalid jpeg quality %d: must be between 1 and 100", c.JPEGQuality)
	}
	base, err := url.Parse(c.AssetBase)
	if err != nil {
		return fmt.Errorf("invalid asset base: %w", err)
	}
	if !base.IsAbs() {
		return fmt.Errorf("invalid asset base %q: must be an absolute URL", c.AssetBase)
	}
	if c.CacheName == "" {
		return fmt.Errorf("cache name must not be empty")
	}
	if c.CacheSize <= 0 {
		return fmt.Errorf("invalid cache size %d: must be positive", c.CacheSize)
	}
	return nil
}
