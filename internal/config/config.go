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
)

// Config holds galley's runtime settings.
type Config struct {
	APIBaseURL             string
	IngredientImageBaseURL string
	DefaultCategory        string
	LogDir                 string
	LogLevel               string
	CacheDir               string // empty when caching is disabled
	CacheTTL               time.Duration
	RequestTimeout         time.Duration
}

const (
	defaultConfigPath             = "~/.config/galley/config.toml"
	defaultAPIBaseURL             = "https://themealdb.com/api/json/v1/1/"
	defaultIngredientImageBaseURL = "https://themealdb.com/images/ingredients/"
	defaultCategory               = "dessert"
	defaultLogDir                 = "~/.local/share/galley/logs"
	defaultLogLevel               = "info"
	defaultCacheDir               = "~/.cache/galley"
	defaultCacheTTL               = 24 * time.Hour
	defaultRequestTimeout         = 10 * time.Second

	// CacheDisabled as cache_dir turns the response cache off.
	CacheDisabled = "off"
)

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		APIBaseURL:             defaultAPIBaseURL,
		IngredientImageBaseURL: defaultIngredientImageBaseURL,
		DefaultCategory:        defaultCategory,
		LogDir:                 mustExpand(defaultLogDir),
		LogLevel:               defaultLogLevel,
		CacheDir:               mustExpand(defaultCacheDir),
		CacheTTL:               defaultCacheTTL,
		RequestTimeout:         defaultRequestTimeout,
	}
}

// Load locates and parses the galley config, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		APIBaseURL             string `toml:"api_base_url"`
		IngredientImageBaseURL string `toml:"ingredient_image_base_url"`
		DefaultCategory        string `toml:"default_category"`
		LogDir                 string `toml:"log_dir"`
		LogLevel               string `toml:"log_level"`
		CacheDir               string `toml:"cache_dir"`
		CacheTTL               string `toml:"cache_ttl"`
		RequestTimeout         string `toml:"request_timeout"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	cfg := Default()
	cfg.APIBaseURL = orDefault(raw.APIBaseURL, cfg.APIBaseURL)
	cfg.IngredientImageBaseURL = orDefault(raw.IngredientImageBaseURL, cfg.IngredientImageBaseURL)
	cfg.DefaultCategory = orDefault(raw.DefaultCategory, cfg.DefaultCategory)
	cfg.LogLevel = strings.ToLower(orDefault(raw.LogLevel, cfg.LogLevel))

	if dir := strings.TrimSpace(raw.LogDir); dir != "" {
		cfg.LogDir = mustExpand(dir)
	}
	switch dir := strings.TrimSpace(raw.CacheDir); {
	case strings.EqualFold(dir, CacheDisabled):
		cfg.CacheDir = ""
	case dir != "":
		cfg.CacheDir = mustExpand(dir)
	}

	if cfg.CacheTTL, err = parseDuration("cache_ttl", raw.CacheTTL, cfg.CacheTTL); err != nil {
		return Config{}, err
	}
	if cfg.RequestTimeout, err = parseDuration("request_timeout", raw.RequestTimeout, cfg.RequestTimeout); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// LogPath returns the path of galley's own log file.
func (c Config) LogPath() string {
	if strings.TrimSpace(c.LogDir) == "" {
		return mustExpand(defaultLogDir + "/galley.log")
	}
	return filepath.Join(c.LogDir, "galley.log")
}

// CacheEnabled reports whether responses should be cached on disk.
func (c Config) CacheEnabled() bool {
	return strings.TrimSpace(c.CacheDir) != ""
}

func orDefault(value, fallback string) string {
	if trimmed := strings.TrimSpace(value); trimmed != "" {
		return trimmed
	}
	return fallback
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
	if d <= 0 {
		return 0, fmt.Errorf("parse config: %s must be positive, got %s", key, trimmed)
	}
	return d, nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return ExpandPath(defaultConfigPath)
	}
	return ExpandPath(path)
}

func mustExpand(path string) string {
	expanded, err := ExpandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

// ExpandPath expands a leading ~ and returns an absolute path.
func ExpandPath(path string) (string, error) {
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
