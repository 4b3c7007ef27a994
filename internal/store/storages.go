package store

import (
	"context"
	"fmt"

	"movievault/internal/config"
	"movievault/internal/logger"
)

// Storages groups all storage repositories into a single value that can be
// passed around the service layer. Currently it holds only [VaultRepository];
// additional repositories can be added here as the feature set grows.
type Storages struct {
	// Vault is the repository for saved media items and collections.
	Vault VaultRepository
}

// NewStorages initialises the storage layer using the supplied configuration
// and logger. The backend is selected by cfg.DB.Driver:
//
//   - "sqlite" opens (and if needed creates) the SQLite database at
//     cfg.DB.DSN and runs pending schema migrations via [DB.Migrate].
//   - "json" uses the single-document JSON store at cfg.DB.DSN.
//
// Returns an error if the database connection cannot be established, if
// migration fails, or if the driver name is unknown.
func NewStorages(cfg config.Storage, logger *logger.Logger) (*Storages, error) {
	logger.Info().Str("driver", cfg.DB.Driver).Msg("creating new storages...")

	switch cfg.DB.Driver {
	case "sqlite":
		db, err := NewConnectSQLite(context.Background(), cfg.DB, logger)
		if err != nil {
			return nil, fmt.Errorf("sqlite connection error: %w", err)
		}

		if err := db.Migrate(); err != nil {
			return nil, fmt.Errorf("migration failed: %w", err)
		}

		return &Storages{
			Vault: NewSQLiteVaultRepository(db, logger),
		}, nil

	case "json":
		return &Storages{
			Vault: NewFileVaultRepository(cfg.DB.DSN, logger),
		}, nil

	default:
		return nil, fmt.Errorf("unknown storage driver: %q", cfg.DB.Driver)
	}
}
