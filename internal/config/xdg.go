package config

import (
	"os"
	"path/filepath"

	"github.com/reciteapp/recite/internal/constants"
)

// XDGConfigHome returns the XDG config home or a default fallback.
func XDGConfigHome() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".config")
}

// XDGDataHome returns the XDG data home or a default fallback.
func XDGDataHome() string {
	if v := os.Getenv("XDG_DATA_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".local", "share")
}

// DefaultConfigPath returns the default TOML config path.
func DefaultConfigPath() string {
	return filepath.Join(XDGConfigHome(), constants.AppName, "config.toml")
}

// DefaultDataDir returns the default data directory (database, logs).
func DefaultDataDir() string {
	return filepath.Join(XDGDataHome(), constants.AppName)
}

// DefaultStorePath returns the default storage path for a backend.
func DefaultStorePath(backend string) string {
	name := constants.AppName + ".db"
	if backend == BackendJSON {
		name = constants.AppName + ".json"
	}
	return filepath.Join(DefaultDataDir(), name)
}
