package server

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/chdigius/awake.fm-artist-server-sub000/pkg/content"
)

// Config is the server configuration, read from a TOML file.
type Config struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string `toml:"addr"`

	// Site is the snapshot key this instance serves.
	Site string `toml:"site"`

	// ContentRoot is the directory served under /content/ for media files.
	// Empty disables the static route.
	ContentRoot string `toml:"content_root"`

	ShutdownTimeout duration `toml:"shutdown_timeout"`

	Graph GraphConfig `toml:"graph"`
	Store StoreConfig `toml:"store"`
	Nav   NavSection  `toml:"nav"`
}

// GraphConfig says where the published graph document comes from. Path
// loads a JSON file directly; otherwise the document is fetched from the
// snapshot store under Config.Site.
type GraphConfig struct {
	Path string `toml:"path"`
}

// StoreConfig selects and configures the snapshot backend.
type StoreConfig struct {
	// Backend is one of "memory", "file", "redis", "mongo".
	Backend string `toml:"backend"`

	// Dir is the base directory for the file backend.
	Dir string `toml:"dir"`

	Redis RedisSection `toml:"redis"`
	Mongo MongoSection `toml:"mongo"`
}

type RedisSection struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	Prefix   string `toml:"prefix"`
}

type MongoSection struct {
	URI        string `toml:"uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

// NavSection is the TOML shape of the site navigation.
type NavSection struct {
	Items []NavItemSection `toml:"items"`
}

type NavItemSection struct {
	Label        string `toml:"label"`
	Ref          string `toml:"ref"`
	AutoChildren string `toml:"auto_children"`
}

// NavConfig converts the TOML navigation into the content package's shape.
func (n NavSection) NavConfig() content.NavConfig {
	items := make([]content.NavEntry, 0, len(n.Items))
	for _, item := range n.Items {
		items = append(items, content.NavEntry{
			Label:        item.Label,
			Ref:          item.Ref,
			AutoChildren: item.AutoChildren,
		})
	}
	return content.NavConfig{Items: items}
}

// duration wraps time.Duration for TOML string values like "10s".
type duration struct {
	time.Duration
}

func (d *duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = parsed
	return nil
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	return Config{
		Addr:            ":8080",
		ShutdownTimeout: duration{10 * time.Second},
		Store:           StoreConfig{Backend: "memory"},
	}
}

// LoadConfig reads a TOML config file, filling unset fields with defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	if cfg.Addr == "" {
		cfg.Addr = ":8080"
	}
	if cfg.Store.Backend == "" {
		cfg.Store.Backend = "memory"
	}
	return cfg, nil
}
