package domdiff

import (
	"github.com/hazyhaar/domdiff/internal/config"
)

// Config is the top-level domdiff configuration. Re-exported from internal.
type Config = config.Config

// BrowserConfig controls Chrome lifecycle.
type BrowserConfig = config.BrowserConfig

// PageConfig defines a page to monitor.
type PageConfig = config.PageConfig

// SinkConfig defines an output backend.
type SinkConfig = config.SinkConfig

// StoreConfig locates the sqlite report history.
type StoreConfig = config.StoreConfig

// HTTPConfig configures the diff API server.
type HTTPConfig = config.HTTPConfig

// LoadConfigFile reads a YAML configuration file.
func LoadConfigFile(path string) (*Config, error) {
	return config.LoadFile(path)
}
