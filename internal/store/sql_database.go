package store

import (
	"database/sql"

	"github.com/oyugijr/EchoTask/internal/logger"
	"github.com/oyugijr/EchoTask/migrations"
)

// DB wraps the raw connection with the migration dialect and an optional
// error classificator (set for Postgres, nil for SQLite).
type DB struct {
	*sql.DB
	dialect            string
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB, db.dialect)
}
