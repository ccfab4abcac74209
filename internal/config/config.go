package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/five82/shelf/internal/wps"
)

// Config holds the runtime settings for shelf.
type Config struct {
	Endpoint       string
	QueryDelay     time.Duration
	EndpointDelay  time.Duration
	PageSize       int
	RequestTimeout time.Duration
	LogFile        string
	LogLevel       string
	MetricsAddr    string
	Cache          CacheConfig
}

// CacheConfig sizes the response cache.
type CacheConfig struct {
	TTL        time.Duration
	MaxEntries int
	RedisURL   string
}

const (
	defaultConfigPath     = "~/.config/shelf/config.toml"
	defaultLogFile        = "~/.local/state/shelf/shelf.log"
	defaultLogLevel       = "info"
	defaultQueryDelay     = 500 * time.Millisecond
	defaultEndpointDelay  = time.Second
	defaultPageSize       = 10
	defaultRequestTimeout = 10 * time.Second
	defaultCacheTTL       = 30 * time.Second
	defaultCacheEntries   = 128
)

// DefaultPath returns the default config file path.
func DefaultPath() string {
	return defaultConfigPath
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Endpoint:       wps.DefaultEndpoint,
		QueryDelay:     defaultQueryDelay,
		EndpointDelay:  defaultEndpointDelay,
		PageSize:       defaultPageSize,
		RequestTimeout: defaultRequestTimeout,
		LogFile:        mustExpand(defaultLogFile),
		LogLevel:       defaultLogLevel,
		Cache: CacheConfig{
			TTL:        defaultCacheTTL,
			MaxEntries: defaultCacheEntries,
		},
	}
}

type rawConfig struct {
	Endpoint       string `toml:"endpoint"`
	QueryDelay     string `toml:"query_delay"`
	EndpointDelay  string `toml:"endpoint_delay"`
	PageSize       int    `toml:"page_size"`
	RequestTimeout string `toml:"request_timeout"`
	LogFile        string `toml:"log_file"`
	LogLevel       string `toml:"log_level"`
	MetricsAddr    string `toml:"metrics_addr"`
	Cache          struct {
		TTL        *string `toml:"ttl"`
		MaxEntries int     `toml:"max_entries"`
		RedisURL   string  `toml:"redis_url"`
	} `toml:"cache"`
}

// Load locates and parses the shelf config, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw rawConfig
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if endpoint := strings.TrimSpace(raw.Endpoint); endpoint != "" {
		cfg.Endpoint = endpoint
	}
	if cfg.QueryDelay, err = parseDuration("query_delay", raw.QueryDelay, cfg.QueryDelay); err != nil {
		return Config{}, err
	}
	if cfg.EndpointDelay, err = parseDuration("endpoint_delay", raw.EndpointDelay, cfg.EndpointDelay); err != nil {
		return Config{}, err
	}
	if cfg.RequestTimeout, err = parseDuration("request_timeout", raw.RequestTimeout, cfg.RequestTimeout); err != nil {
		return Config{}, err
	}
	if raw.PageSize > 0 {
		cfg.PageSize = raw.PageSize
	}
	if logFile := strings.TrimSpace(raw.LogFile); logFile != "" {
		cfg.LogFile = mustExpand(logFile)
	}
	if level := strings.TrimSpace(raw.LogLevel); level != "" {
		cfg.LogLevel = level
	}
	cfg.MetricsAddr = strings.TrimSpace(raw.MetricsAddr)

	// An explicit "0s" disables the cache, so absence and zero differ here.
	if raw.Cache.TTL != nil {
		if cfg.Cache.TTL, err = parseDuration("cache.ttl", *raw.Cache.TTL, cfg.Cache.TTL); err != nil {
			return Config{}, err
		}
	}
	if raw.Cache.MaxEntries > 0 {
		cfg.Cache.MaxEntries = raw.Cache.MaxEntries
	}
	cfg.Cache.RedisURL = strings.TrimSpace(raw.Cache.RedisURL)

	return cfg, nil
}

func parseDuration(key, value string, fallback time.Duration) (time.Duration, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(trimmed)
	if err != nil {
		return 0, fmt.Errorf("parse config: %s: %w", key, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("parse config: %s must not be negative", key)
	}
	return d, nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
