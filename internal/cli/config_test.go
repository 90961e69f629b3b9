package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"meshwalk/pkg/cache"
)

func TestCacheDirDefault(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}

	home, _ := os.UserHomeDir()
	expected := filepath.Join(home, ".cache", appName)
	if dir != expected {
		t.Errorf("cacheDir() = %q, want %q", dir, expected)
	}
}

func TestCacheDirXDG(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/custom-cache")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}

	expected := filepath.Join("/tmp/custom-cache", appName)
	if dir != expected {
		t.Errorf("cacheDir() with XDG_CACHE_HOME = %q, want %q", dir, expected)
	}
}

func TestConfigPathXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/custom-config")

	path, err := configPath()
	if err != nil {
		t.Fatalf("configPath() error: %v", err)
	}

	expected := filepath.Join("/tmp/custom-config", appName, "config.toml")
	if path != expected {
		t.Errorf("configPath() = %q, want %q", path, expected)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("loadConfig() error: %v", err)
	}
	if cfg.MaxDepth != 0 || cfg.Cache.Backend != "" {
		t.Errorf("missing config file should yield zero config, got %+v", cfg)
	}
}

func TestLoadConfigFile(t *testing.T) {
	configHome := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configHome)

	dir := filepath.Join(configHome, appName)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	content := `max-depth = 250

[cache]
backend = "file"
dir = "/tmp/meshwalk-test-cache"

[redis]
addr = "localhost:6380"
db = 2
`
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("loadConfig() error: %v", err)
	}
	if cfg.MaxDepth != 250 {
		t.Errorf("MaxDepth = %d, want 250", cfg.MaxDepth)
	}
	if cfg.Cache.Backend != "file" || cfg.Cache.Dir != "/tmp/meshwalk-test-cache" {
		t.Errorf("Cache = %+v", cfg.Cache)
	}
	if cfg.Redis.Addr != "localhost:6380" || cfg.Redis.DB != 2 {
		t.Errorf("Redis = %+v", cfg.Redis)
	}
}

func TestLoadConfigMalformed(t *testing.T) {
	configHome := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configHome)

	dir := filepath.Join(configHome, appName)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte("max-depth = ["), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := loadConfig(); err == nil {
		t.Error("loadConfig() should fail on a malformed file")
	}
}

func TestNewCacheSelection(t *testing.T) {
	ctx := context.Background()

	// noCache forces the null cache
	c, err := newCache(ctx, Config{}, true)
	if err != nil {
		t.Fatalf("newCache error: %v", err)
	}
	if _, ok := c.(*cache.NullCache); !ok {
		t.Errorf("noCache should select NullCache, got %T", c)
	}

	// Backend "none" disables caching too
	c, err = newCache(ctx, Config{Cache: CacheConfig{Backend: "none"}}, false)
	if err != nil {
		t.Fatalf("newCache error: %v", err)
	}
	if _, ok := c.(*cache.NullCache); !ok {
		t.Errorf("backend none should select NullCache, got %T", c)
	}

	// Explicit directory selects the file cache
	c, err = newCache(ctx, Config{Cache: CacheConfig{Dir: t.TempDir()}}, false)
	if err != nil {
		t.Fatalf("newCache error: %v", err)
	}
	if _, ok := c.(*cache.FileCache); !ok {
		t.Errorf("file backend should select FileCache, got %T", c)
	}
}
