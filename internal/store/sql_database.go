package store

import (
	"database/sql"

	"movievault/internal/logger"
	"movievault/migrations"
)

type DB struct {
	*sql.DB
	logger *logger.Logger
}

func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB)
}
