// Package config handles domdiff configuration from YAML files.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the top-level domdiff configuration.
type Config struct {
	Browser BrowserConfig `yaml:"browser"`
	Pages   []PageConfig  `yaml:"pages"`
	Sinks   []SinkConfig  `yaml:"sinks"`
	Store   StoreConfig   `yaml:"store"`
	HTTP    HTTPConfig    `yaml:"http"`
}

// BrowserConfig controls Chrome lifecycle.
type BrowserConfig struct {
	// Remote is the WebSocket URL of an external Chrome instance.
	// Empty = launch a local Chrome.
	Remote           string   `yaml:"remote"`
	Stealth          bool     `yaml:"stealth"`
	ResourceBlocking []string `yaml:"resource_blocking"`
}

// PageConfig defines a page to monitor for structural change.
type PageConfig struct {
	ID  string `yaml:"id"`
	URL string `yaml:"url"`
	// Interval is how long to wait between the baseline and the fresh
	// capture of each comparison cycle.
	Interval time.Duration `yaml:"interval"`
}

// SinkConfig defines an output backend.
type SinkConfig struct {
	Type string `yaml:"type"` // stdout | webhook | store
	URL  string `yaml:"url"`  // for webhook
}

// StoreConfig locates the sqlite report history.
type StoreConfig struct {
	Path string `yaml:"path"`
}

// HTTPConfig configures the diff API server.
type HTTPConfig struct {
	Listen string `yaml:"listen"`
}

// LoadFile reads a YAML configuration file.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}

	cfg.ApplyDefaults()
	return &cfg, nil
}

// ApplyDefaults fills in zero-valued fields.
func (c *Config) ApplyDefaults() {
	for i := range c.Pages {
		if c.Pages[i].Interval <= 0 {
			c.Pages[i].Interval = 5 * time.Minute
		}
	}
	if c.HTTP.Listen == "" {
		c.HTTP.Listen = ":8440"
	}
}
