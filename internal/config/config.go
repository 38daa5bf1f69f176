// ABOUTME: Fittracker configuration management.
// ABOUTME: Handles the data directory setting and derived storage paths.

package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/harperreed/fittracker/internal/storage"
)

// Config stores fittracker configuration.
type Config struct {
	// DataDir is the root directory for data storage. The SQLite
	// database and the session draft cache live under it.
	// Supports ~ expansion for home directory. Defaults to
	// ~/.local/share/fittracker.
	DataDir string `json:"data_dir,omitempty"`

	// UserID is stamped onto committed workouts. Defaults to
	// "local-user".
	UserID string `json:"user_id,omitempty"`
}

// GetDataDir returns the configured data directory with ~ expanded,
// defaulting to the standard XDG data directory.
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return storage.DataDir()
	}
	return ExpandPath(c.DataDir)
}

// GetUserID returns the configured user ID, defaulting to "local-user".
func (c *Config) GetUserID() string {
	if c.UserID == "" {
		return "local-user"
	}
	return c.UserID
}

// DBPath returns the SQLite database path under the data directory.
func (c *Config) DBPath() string {
	return filepath.Join(c.GetDataDir(), "fittracker.db")
}

// DraftCacheDir returns the session draft cache directory under the
// data directory.
func (c *Config) DraftCacheDir() string {
	return filepath.Join(c.GetDataDir(), "session")
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		home, _ := os.UserHomeDir()
		return home
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// GetConfigPath returns the config file path.
func GetConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "fittracker", "config.json")
}

// Load reads config from disk.
func Load() (*Config, error) {
	path := GetConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes config to disk.
func (c *Config) Save() error {
	path := GetConfigPath()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
