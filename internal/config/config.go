// Package config handles hepharvest configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// ConfigDir is the directory name under XDG_CONFIG_HOME.
	ConfigDir = "hepharvest"
	// ConfigFile is the config file name.
	ConfigFile = "config.yml"
	// DBFile is the entry store file name, under XDG_DATA_HOME.
	DBFile = "entries.db"
)

// Config is the tool configuration. Zero values fall back to the client
// defaults; a missing config file is not an error.
type Config struct {
	APIBaseURL     string `yaml:"api_base_url,omitempty"`
	TimeoutSeconds int    `yaml:"timeout_seconds,omitempty"`
	PageSize       int    `yaml:"page_size,omitempty"`
	MaxAuthors     int    `yaml:"max_authors,omitempty"`
	MaxIterations  int    `yaml:"max_iterations,omitempty"`
	StorePath      string `yaml:"store_path,omitempty"`
}

// Path returns the config file path. Respects XDG_CONFIG_HOME, defaults to
// ~/.config/hepharvest/config.yml.
func Path() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, ConfigDir, ConfigFile)
}

// DefaultStorePath returns the default entry store path. Respects
// XDG_DATA_HOME, defaults to ~/.local/share/hepharvest/entries.db.
func DefaultStorePath() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, ConfigDir, DBFile)
}

// Load reads the config file and applies environment overrides. A missing
// file yields the zero config, not an error.
func Load() (*Config, error) {
	return load(Path())
}

func load(path string) (*Config, error) {
	var cfg Config

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// Defaults only.
		case err != nil:
			return nil, fmt.Errorf("reading config: %w", err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parsing config: %w", err)
			}
		}
	}

	applyEnv(&cfg)

	if cfg.StorePath == "" {
		cfg.StorePath = DefaultStorePath()
	}
	return &cfg, nil
}

// applyEnv overrides config fields from HEPHARVEST_* environment variables.
func applyEnv(cfg *Config) {
	if v := os.Getenv("HEPHARVEST_API_URL"); v != "" {
		cfg.APIBaseURL = v
	}
	if v := os.Getenv("HEPHARVEST_STORE"); v != "" {
		cfg.StorePath = v
	}
	if v := os.Getenv("HEPHARVEST_TIMEOUT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TimeoutSeconds = n
		}
	}
	if v := os.Getenv("HEPHARVEST_MAX_AUTHORS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.MaxAuthors = n
		}
	}
}

// Timeout returns the configured HTTP timeout, or zero when unset.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Save writes the config file, creating its directory as needed.
func (c *Config) Save() error {
	path := Path()
	if path == "" {
		return fmt.Errorf("cannot determine config path")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}
