package migrations

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/pressly/goose/v3"
)

//go:embed sqlite/*.sql postgres/*.sql
var embedMigrations embed.FS

// Supported migration dialects. The client runs the sqlite schema set, the
// server runs the postgres one.
const (
	DialectSQLite   = "sqlite"
	DialectPostgres = "postgres"
)

// Migrate applies all pending schema migrations for the given dialect.
func Migrate(db *sql.DB, dialect string) error {
	if db == nil {
		return errors.New("migration error: db is nil")
	}

	goose.SetBaseFS(embedMigrations)

	var gooseDialect, dir string
	switch dialect {
	case DialectSQLite:
		gooseDialect, dir = "sqlite3", "sqlite"
	case DialectPostgres:
		gooseDialect, dir = "pgx", "postgres"
	default:
		return fmt.Errorf("migration error: unknown dialect %q", dialect)
	}

	if err := goose.SetDialect(gooseDialect); err != nil {
		return fmt.Errorf("migration error setting dialect for db: %w", err)
	}

	if err := goose.Up(db, dir); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	return nil
}
