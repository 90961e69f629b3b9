package cli

import (
	"context"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"meshwalk/pkg/cache"
)

// appName is the application name used for directories and display.
const appName = "meshwalk"

// Config holds settings read from the optional config file at
// ~/.config/meshwalk/config.toml. Flags override config values.
type Config struct {
	// MaxDepth is the default walk depth bound (0 = full coverage).
	MaxDepth int `toml:"max-depth"`

	Cache CacheConfig `toml:"cache"`
	Redis RedisConfig `toml:"redis"`
}

// CacheConfig selects and configures the cache backend.
type CacheConfig struct {
	// Backend is "file", "redis" or "none". Empty means "file".
	Backend string `toml:"backend"`
	// Dir overrides the default cache directory (file backend only).
	Dir string `toml:"dir"`
}

// RedisConfig configures the redis cache backend.
type RedisConfig struct {
	Addr string `toml:"addr"`
	DB   int    `toml:"db"`
}

// loadConfig reads the config file if present. A missing file yields the
// zero Config; a malformed file is an error.
func loadConfig() (Config, error) {
	var cfg Config
	path, err := configPath()
	if err != nil {
		return cfg, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// newCache builds the cache backend selected by the config.
// noCache forces the null cache regardless of configuration.
func newCache(ctx context.Context, cfg Config, noCache bool) (cache.Cache, error) {
	if noCache || cfg.Cache.Backend == "none" {
		return cache.NewNullCache(), nil
	}

	if cfg.Cache.Backend == "redis" {
		addr := cfg.Redis.Addr
		if addr == "" {
			addr = "localhost:6379"
		}
		return cache.NewRedisCache(ctx, addr, cfg.Redis.DB)
	}

	dir := cfg.Cache.Dir
	if dir == "" {
		var err error
		if dir, err = cacheDir(); err != nil {
			// No usable cache directory: run without caching.
			return cache.NewNullCache(), nil
		}
	}
	return cache.NewFileCache(dir)
}

// cacheDir returns the cache directory using the XDG standard
// (~/.cache/meshwalk/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// configPath returns the config file path using the XDG standard
// (~/.config/meshwalk/config.toml).
func configPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}
