package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestLoad_MissingConfigFallsBackToDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := Load(filepath.Join(home, "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIBaseURL != defaultAPIBaseURL {
		t.Fatalf("APIBaseURL = %q, want %q", cfg.APIBaseURL, defaultAPIBaseURL)
	}
	if cfg.DefaultCategory != "dessert" {
		t.Fatalf("DefaultCategory = %q, want dessert", cfg.DefaultCategory)
	}
	if cfg.CacheTTL != 24*time.Hour || cfg.RequestTimeout != 10*time.Second {
		t.Fatalf("durations = %v/%v, want 24h/10s", cfg.CacheTTL, cfg.RequestTimeout)
	}

	wantLogDir, err := ExpandPath(defaultLogDir)
	if err != nil {
		t.Fatalf("ExpandPath(defaultLogDir) returned error: %v", err)
	}
	if cfg.LogDir != wantLogDir {
		t.Fatalf("LogDir = %q, want %q", cfg.LogDir, wantLogDir)
	}
	if !cfg.CacheEnabled() || !strings.HasPrefix(cfg.CacheDir, home) {
		t.Fatalf("CacheDir = %q, want enabled under HOME %q", cfg.CacheDir, home)
	}
}

func TestLoad_ParsesAndTrimsConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path := writeConfig(t, `
api_base_url = "  http://localhost:8080/api/  "
ingredient_image_base_url = "http://localhost:8080/img/"
default_category = " Seafood "
log_dir = "  ~/.galley/logs  "
log_level = "DEBUG"
cache_dir = "~/cache"
cache_ttl = "90m"
request_timeout = "3s"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIBaseURL != "http://localhost:8080/api/" {
		t.Fatalf("APIBaseURL = %q", cfg.APIBaseURL)
	}
	if cfg.IngredientImageBaseURL != "http://localhost:8080/img/" {
		t.Fatalf("IngredientImageBaseURL = %q", cfg.IngredientImageBaseURL)
	}
	if cfg.DefaultCategory != "Seafood" {
		t.Fatalf("DefaultCategory = %q, want Seafood", cfg.DefaultCategory)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("LogLevel = %q, want debug", cfg.LogLevel)
	}
	if !strings.HasPrefix(cfg.LogDir, home) {
		t.Fatalf("LogDir = %q, want it under HOME %q", cfg.LogDir, home)
	}
	if cfg.CacheDir != filepath.Join(home, "cache") {
		t.Fatalf("CacheDir = %q, want %q", cfg.CacheDir, filepath.Join(home, "cache"))
	}
	if cfg.CacheTTL != 90*time.Minute || cfg.RequestTimeout != 3*time.Second {
		t.Fatalf("durations = %v/%v, want 90m/3s", cfg.CacheTTL, cfg.RequestTimeout)
	}
	if cfg.LogPath() != filepath.Join(cfg.LogDir, "galley.log") {
		t.Fatalf("LogPath = %q", cfg.LogPath())
	}
}

func TestLoad_EmptyValuesUseDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load(writeConfig(t, `
api_base_url = "   "
log_dir = ""
cache_ttl = ""
`))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	want := Default()
	if cfg != want {
		t.Fatalf("Load = %#v, want defaults %#v", cfg, want)
	}
}

func TestLoad_CacheOff(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load(writeConfig(t, `cache_dir = "OFF"`))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.CacheEnabled() {
		t.Fatalf("CacheEnabled = true with cache_dir=off (dir %q)", cfg.CacheDir)
	}
}

func TestLoad_InvalidValuesFail(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"toml", `api_base_url = [`, "parse config"},
		{"ttl", `cache_ttl = "soon"`, "cache_ttl"},
		{"timeout", `request_timeout = "-1s"`, "request_timeout"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			if err == nil {
				t.Fatalf("Load returned nil error, want error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("Load error = %q, want it to mention %q", err.Error(), tt.want)
			}
		})
	}
}

func TestExpandPath_ExpandsTildeAndReturnsAbs(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := ExpandPath("~/a/b")
	if err != nil {
		t.Fatalf("ExpandPath returned error: %v", err)
	}
	want := filepath.Join(home, "a/b")
	if got != want {
		t.Fatalf("ExpandPath = %q, want %q", got, want)
	}
}

func TestExpandPath_EmptyErrors(t *testing.T) {
	if _, err := ExpandPath("   "); err == nil {
		t.Fatalf("ExpandPath returned nil error, want error")
	}
}

func TestLogPath_DefaultsWhenLogDirEmpty(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	var cfg Config
	got := cfg.LogPath()
	if !strings.HasPrefix(got, home) {
		t.Fatalf("LogPath = %q, want it under HOME %q", got, home)
	}
	if !strings.HasSuffix(got, filepath.FromSlash("/galley.log")) {
		t.Fatalf("LogPath = %q, want it to end with /galley.log", got)
	}
}
