// Package config loads parley's configuration: the provider catalog
// (model credentials) and scenario files.
//
// Configuration is stored under os.UserConfigDir()/parley/:
//
//	~/Library/Application Support/parley/   (macOS)
//	~/.config/parley/                       (Linux)
//	%AppData%/parley/                       (Windows)
//
// Layout:
//
//	parley/
//	├── providers.yaml   # model providers and credentials
//	└── episodes/        # default episode database
package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// appDir is the directory name under os.UserConfigDir().
	appDir = "parley"

	// providersFile holds the provider catalog.
	providersFile = "providers.yaml"

	// episodesDir is the default episode database directory.
	episodesDir = "episodes"
)

// Config holds the root configuration state.
type Config struct {
	// Dir is the root configuration directory.
	Dir string
}

// Load resolves the configuration from the default location.
func Load() (*Config, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return nil, fmt.Errorf("cannot determine config directory: %w", err)
	}
	return &Config{Dir: filepath.Join(base, appDir)}, nil
}

// ProvidersPath returns the path of the provider catalog file.
func (c *Config) ProvidersPath() string {
	return filepath.Join(c.Dir, providersFile)
}

// EpisodesDir returns the default episode database directory.
func (c *Config) EpisodesDir() string {
	return filepath.Join(c.Dir, episodesDir)
}
