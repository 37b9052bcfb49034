// Package config loads the photocal.toml configuration file.
//
// Configuration supplies defaults only: explicit CLI flags always win,
// and a missing file means built-in defaults. The PHOTOCAL_REDIS_ADDR
// environment variable (typically loaded from .env) overrides the
// configured Redis address, so deployments can point a shared cache
// without editing the file.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// DefaultFilename is looked up in the working directory when no
// --config flag names a file.
const DefaultFilename = "photocal.toml"

// RedisAddrEnv overrides Cache.RedisAddr when set.
const RedisAddrEnv = "PHOTOCAL_REDIS_ADDR"

// Config is the decoded photocal.toml.
type Config struct {
	Calendar Calendar `toml:"calendar"`
	Paths    Paths    `toml:"paths"`
	Cache    Cache    `toml:"cache"`
	Server   Server   `toml:"server"`
}

// Calendar holds page-content defaults.
type Calendar struct {
	Language   string `toml:"language"`
	WebsiteURL string `toml:"website_url"`
	SourceYear int    `toml:"source_year"` // photo year for perpetual builds
}

// Paths holds the input and output locations.
type Paths struct {
	PhotosDir      string `toml:"photos_dir"`
	Manifest       string `toml:"manifest"`
	BaseMap        string `toml:"base_map"`
	LocationsIndex string `toml:"locations_index"`
	Observations   string `toml:"observations"`
	OutputDir      string `toml:"output_dir"`
}

// Cache holds the cache backend selection.
type Cache struct {
	Enabled   bool   `toml:"enabled"`
	RedisAddr string `toml:"redis_addr"` // empty selects the file cache
}

// Server holds preview server settings.
type Server struct {
	Listen string `toml:"listen"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Calendar: Calendar{Language: "en"},
		Paths: Paths{
			PhotosDir:    "photos",
			Manifest:     "photos/photo_information.txt",
			Observations: "data/observations.json",
			OutputDir:    "output",
		},
		Cache:  Cache{Enabled: true},
		Server: Server{Listen: ":8475"},
	}
}

// Load reads a TOML config file, layered over [Default]. An empty path
// tries [DefaultFilename] and falls back to defaults when it does not
// exist; an explicit path must exist.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultFilename
	}

	meta, err := toml.DecodeFile(path, cfg)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			cfg.applyEnv()
			return cfg, nil
		}
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("config %s: unknown key %s", path, undecoded[0])
	}

	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	if addr := os.Getenv(RedisAddrEnv); addr != "" {
		c.Cache.RedisAddr = addr
	}
}
