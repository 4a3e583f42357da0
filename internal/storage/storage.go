package storage

import (
	"fmt"

	"github.com/reciteapp/recite/internal/config"
	"github.com/reciteapp/recite/internal/keyring"
	"github.com/reciteapp/recite/internal/storage/postgres"
	"github.com/reciteapp/recite/internal/storage/sqlite"
)

// Open constructs the Provider named by the storage config. Postgres
// connection strings come from the OS keyring, never from the config file.
func Open(cfg config.StorageConfig) (Provider, error) {
	switch cfg.Backend {
	case config.BackendSQLite:
		return sqlite.NewStore(cfg.Path), nil
	case config.BackendJSON:
		return NewJSONStore(cfg.Path), nil
	case config.BackendPostgres:
		connStr, err := keyring.GetConnectionString()
		if err != nil {
			return nil, fmt.Errorf("postgres backend selected but no stored credentials: %w", err)
		}
		return postgres.NewStore(connStr), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}
