// Package config loads sheettracker settings from YAML.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"gopkg.in/yaml.v3"
)

const (
	BackendJSON = "json"
	BackendBolt = "bolt"
)

// Config is the complete sheettracker configuration
type Config struct {
	Storage StorageConfig `yaml:"storage"`
	Server  ServerConfig  `yaml:"server"`
	Fetch   FetchConfig   `yaml:"fetch"`
	UI      UIConfig      `yaml:"ui"`
}

// StorageConfig picks where the question list lives
type StorageConfig struct {
	// Backend is json (one file) or bolt (bbolt database)
	Backend string `yaml:"backend"`
	// Dir holds the data file (default: ~/.local/share/sheettracker)
	Dir string `yaml:"dir"`
}

// ServerConfig configures the import gateway
type ServerConfig struct {
	// Addr is the listen address for `serve`
	Addr string `yaml:"addr"`
	// URL of a running gateway; empty imports in-process
	URL string `yaml:"url"`
	// MaxUploadBytes caps spreadsheet uploads
	MaxUploadBytes int64 `yaml:"max_upload_bytes"`
}

// FetchConfig configures outbound document fetches
type FetchConfig struct {
	// Timeout for one fetch; 0 waits indefinitely
	Timeout time.Duration `yaml:"timeout"`
}

type UIConfig struct {
	Theme string `yaml:"theme"`
	// Color is auto, always or never
	Color string `yaml:"color"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Storage: StorageConfig{
			Backend: BackendJSON,
			Dir:     defaultDataDir(),
		},
		Server: ServerConfig{
			Addr:           "127.0.0.1:8080",
			MaxUploadBytes: 10 << 20,
		},
		UI: UIConfig{
			Theme: "classic",
			Color: "auto",
		},
	}
}

func defaultDataDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".local", "share", "sheettracker")
	}
	return "."
}

// Validate checks that the configuration is usable
func (c *Config) Validate() error {
	if err := validation.ValidateStruct(&c.Storage,
		validation.Field(&c.Storage.Backend, validation.Required, validation.In(BackendJSON, BackendBolt)),
		validation.Field(&c.Storage.Dir, validation.Required),
	); err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	if err := validation.ValidateStruct(&c.Server,
		validation.Field(&c.Server.Addr, validation.Required),
		validation.Field(&c.Server.URL, is.URL),
		validation.Field(&c.Server.MaxUploadBytes, validation.Min(int64(1))),
	); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	if c.Fetch.Timeout < 0 {
		return fmt.Errorf("fetch: timeout must not be negative")
	}
	if err := validation.ValidateStruct(&c.UI,
		validation.Field(&c.UI.Theme, validation.In("classic", "neon", "mono")),
		validation.Field(&c.UI.Color, validation.In("auto", "always", "never")),
	); err != nil {
		return fmt.Errorf("ui: %w", err)
	}
	return nil
}

// LoadFromFile reads one YAML file.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &cfg, nil
}

// Merge copies every non-zero field of other over c.
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}
	if other.Storage.Backend != "" {
		c.Storage.Backend = other.Storage.Backend
	}
	if other.Storage.Dir != "" {
		c.Storage.Dir = other.Storage.Dir
	}
	if other.Server.Addr != "" {
		c.Server.Addr = other.Server.Addr
	}
	if other.Server.URL != "" {
		c.Server.URL = other.Server.URL
	}
	if other.Server.MaxUploadBytes != 0 {
		c.Server.MaxUploadBytes = other.Server.MaxUploadBytes
	}
	if other.Fetch.Timeout != 0 {
		c.Fetch.Timeout = other.Fetch.Timeout
	}
	if other.UI.Theme != "" {
		c.UI.Theme = other.UI.Theme
	}
	if other.UI.Color != "" {
		c.UI.Color = other.UI.Color
	}
}
