// Package config loads the manifest client configuration: a TOML file with
// defaults for everything, then MANIFEST_* environment overrides on top.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	toml "github.com/pelletier/go-toml/v2"
)

// Config captures everything the client needs to run.
type Config struct {
	APIBase        string        `env:"MANIFEST_API_BASE"`
	Offline        bool          `env:"MANIFEST_OFFLINE"`
	CachePath      string        `env:"MANIFEST_CACHE_PATH"`
	SeedPath       string        `env:"MANIFEST_SEED_PATH"`
	RequestTimeout time.Duration `env:"MANIFEST_REQUEST_TIMEOUT"`
}

const (
	defaultConfigPath     = "~/.config/manifest/config.toml"
	defaultAPIBase        = "127.0.0.1:5030"
	defaultCachePath      = "~/.local/share/manifest/state.json"
	defaultSeedPath       = "~/.config/manifest/seed.yaml"
	defaultRequestTimeout = 5 * time.Second
)

// Load locates and parses the config file, falls back to defaults when it
// is missing, and applies environment overrides last.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path, defaultConfigPath)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		APIBase:        defaultAPIBase,
		CachePath:      defaultCachePath,
		SeedPath:       defaultSeedPath,
		RequestTimeout: defaultRequestTimeout,
	}

	file, err := os.Open(resolved)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	if err == nil {
		defer file.Close()

		data, err := io.ReadAll(file)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}

		var raw struct {
			APIBase        string `toml:"api_base"`
			Offline        bool   `toml:"offline"`
			CachePath      string `toml:"cache_path"`
			SeedPath       string `toml:"seed_path"`
			RequestTimeout string `toml:"request_timeout"`
		}
		if err := toml.Unmarshal(data, &raw); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}

		if v := strings.TrimSpace(raw.APIBase); v != "" {
			cfg.APIBase = v
		}
		cfg.Offline = raw.Offline
		if v := strings.TrimSpace(raw.CachePath); v != "" {
			cfg.CachePath = v
		}
		if v := strings.TrimSpace(raw.SeedPath); v != "" {
			cfg.SeedPath = v
		}
		if v := strings.TrimSpace(raw.RequestTimeout); v != "" {
			d, err := time.ParseDuration(v)
			if err != nil {
				return Config{}, fmt.Errorf("parse request_timeout: %w", err)
			}
			cfg.RequestTimeout = d
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env overrides: %w", err)
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = defaultRequestTimeout
	}

	cfg.CachePath = mustExpand(cfg.CachePath)
	cfg.SeedPath = mustExpand(cfg.SeedPath)
	return cfg, nil
}

func resolvePath(path, fallback string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(fallback)
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
