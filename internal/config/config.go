// Package config provides the TOML application config and path helpers.
// Scheduling settings live in storage; this file only decides where storage
// and logs go and which backend to use.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Backend names accepted in the config file.
const (
	BackendSQLite   = "sqlite"
	BackendJSON     = "json"
	BackendPostgres = "postgres"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Storage StorageConfig `toml:"storage"`
	Debug   bool          `toml:"debug"`
}

// StorageConfig selects and locates the storage backend.
type StorageConfig struct {
	Backend string `toml:"backend"` // sqlite (default), json, or postgres
	Path    string `toml:"path"`    // database/file path for sqlite and json
}

// Load reads a TOML config from the given path. A missing file is not an
// error; defaults apply.
func Load(path string) (FileConfig, error) {
	cfg := FileConfig{}
	if path == "" {
		return cfg, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			applyDefaults(&cfg)
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to stat config: %w", err)
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to decode config: %w", err)
	}
	applyDefaults(&cfg)
	if err := validate(cfg); err != nil {
		return FileConfig{}, err
	}
	return cfg, nil
}

func applyDefaults(cfg *FileConfig) {
	if cfg.Storage.Backend == "" {
		cfg.Storage.Backend = BackendSQLite
	}
	if cfg.Storage.Path == "" {
		cfg.Storage.Path = DefaultStorePath(cfg.Storage.Backend)
	}
}

func validate(cfg FileConfig) error {
	switch cfg.Storage.Backend {
	case BackendSQLite, BackendJSON, BackendPostgres:
		return nil
	default:
		return fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}
