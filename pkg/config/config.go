// Package config loads flowpad configuration from a TOML file.
//
// Configuration is optional: every field has a default, a missing file is
// not an error, and CLI flags override file values. The default location
// is ~/.config/flowpad/flowpad.toml.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Config is the full application configuration.
type Config struct {
	Theme     string `toml:"theme"`
	Direction string `toml:"direction"`
	Listen    string `toml:"listen"`

	Layout LayoutConfig `toml:"layout"`
	Store  StoreConfig  `toml:"store"`
}

// LayoutConfig overrides the layout engine metrics.
type LayoutConfig struct {
	NodeWidth  float64 `toml:"node_width"`
	NodeHeight float64 `toml:"node_height"`
	RankGap    float64 `toml:"rank_gap"`
	NodeGap    float64 `toml:"node_gap"`
}

// StoreConfig selects the persistence backend.
type StoreConfig struct {
	Backend       string `toml:"backend"` // memory, file, redis, mongo
	Path          string `toml:"path"`
	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`
	TTLMinutes    int    `toml:"ttl_minutes"`
	MongoURI      string `toml:"mongo_uri"`
	MongoDatabase string `toml:"mongo_database"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Theme:     "light",
		Direction: "TB",
		Listen:    ":8420",
		Layout: LayoutConfig{
			NodeWidth:  172,
			NodeHeight: 36,
			RankGap:    64,
			NodeGap:    28,
		},
		Store: StoreConfig{
			Backend: "file",
		},
	}
}

// DefaultPath returns the default config file location, or "" if the home
// directory cannot be determined.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "flowpad", "flowpad.toml")
}

// Load reads the TOML file at path, layering it over the defaults.
// A missing file returns the defaults with no error; a malformed file is
// an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		path = DefaultPath()
	}
	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// TTL converts the configured minutes to a duration.
func (s StoreConfig) TTL() time.Duration {
	return time.Duration(s.TTLMinutes) * time.Minute
}
