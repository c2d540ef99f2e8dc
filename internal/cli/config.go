package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config is the starchart.toml configuration shared by all commands.
type Config struct {
	Universe UniverseConfig `toml:"universe"`
	Cache    CacheConfig    `toml:"cache"`
	Drafts   DraftsConfig   `toml:"drafts"`
	Map      MapConfig      `toml:"map"`
	Viewport ViewportConfig `toml:"viewport"`
}

// UniverseConfig locates the galaxy-generation service.
type UniverseConfig struct {
	URL   string `toml:"url"`
	Token string `toml:"token"`
}

// CacheConfig selects the cache backend.
type CacheConfig struct {
	// Backend is one of "file", "redis", "none".
	Backend string      `toml:"backend"`
	Dir     string      `toml:"dir"`
	Redis   RedisConfig `toml:"redis"`
}

// RedisConfig configures the redis cache backend.
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// DraftsConfig selects the draft store backend.
type DraftsConfig struct {
	// Backend is one of "file", "mongo".
	Backend string      `toml:"backend"`
	Dir     string      `toml:"dir"`
	Mongo   MongoConfig `toml:"mongo"`
}

// MongoConfig configures the mongo draft store.
type MongoConfig struct {
	URI      string `toml:"uri"`
	Database string `toml:"database"`
}

// MapConfig holds default build parameters.
type MapConfig struct {
	LinkThreshold   float64 `toml:"link_threshold"`
	LongRangeChance float64 `toml:"long_range_chance"`
	Seed            uint64  `toml:"seed"`
}

// ViewportConfig holds default fit parameters.
type ViewportConfig struct {
	Width           float64 `toml:"width"`
	Height          float64 `toml:"height"`
	VisibleFraction float64 `toml:"visible_fraction"`
	MinScale        float64 `toml:"min_scale"`
	MaxScale        float64 `toml:"max_scale"`
}

// DefaultConfig returns the built-in defaults, used when no config file
// exists.
func DefaultConfig() Config {
	return Config{
		Universe: UniverseConfig{URL: "http://localhost:8080"},
		Cache:    CacheConfig{Backend: "file"},
		Drafts:   DraftsConfig{Backend: "file"},
	}
}

// LoadConfig reads the TOML config at path, or the default location when
// path is empty. A missing file is not an error; defaults apply.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	explicit := path != ""
	if path == "" {
		var err error
		if path, err = defaultConfigPath(); err != nil {
			return cfg, nil
		}
	}

	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return cfg, fmt.Errorf("load config %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return cfg, fmt.Errorf("config %s: unknown key %q", path, undecoded[0].String())
	}
	return cfg, nil
}

func defaultConfigPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "starchart.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "starchart.toml"), nil
}
