// Package migrations embeds the goose SQL migration scripts and exposes
// helpers to run them. The migrate CLI, the optional boot-time
// auto-migrate, and integration tests all go through this package so the
// embedded scripts are the single source of schema truth.
package migrations

import (
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
)

//go:embed *.sql
var embedMigrations embed.FS

// setup points goose at the embedded scripts.
func setup() error {
	goose.SetBaseFS(embedMigrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("migration error setting dialect: %w", err)
	}
	return nil
}

// Up applies all pending migrations. Running with nothing pending is a no-op.
func Up(db *sql.DB) error {
	if err := setup(); err != nil {
		return err
	}
	if err := goose.Up(db, "."); err != nil {
		return fmt.Errorf("migration up error: %w", err)
	}
	return nil
}

// UpByOne applies the next pending migration only.
func UpByOne(db *sql.DB) error {
	if err := setup(); err != nil {
		return err
	}
	if err := goose.UpByOne(db, "."); err != nil {
		return fmt.Errorf("migration up-by-one error: %w", err)
	}
	return nil
}

// Down rolls back the most recently applied migration.
func Down(db *sql.DB) error {
	if err := setup(); err != nil {
		return err
	}
	if err := goose.Down(db, "."); err != nil {
		return fmt.Errorf("migration down error: %w", err)
	}
	return nil
}

// Redo rolls back the latest migration and re-applies it.
func Redo(db *sql.DB) error {
	if err := setup(); err != nil {
		return err
	}
	if err := goose.Redo(db, "."); err != nil {
		return fmt.Errorf("migration redo error: %w", err)
	}
	return nil
}

// Status prints the applied/pending state of every known migration.
func Status(db *sql.DB) error {
	if err := setup(); err != nil {
		return err
	}
	if err := goose.Status(db, "."); err != nil {
		return fmt.Errorf("migration status error: %w", err)
	}
	return nil
}

// Version returns the currently applied migration version.
func Version(db *sql.DB) (int64, error) {
	if err := setup(); err != nil {
		return 0, err
	}
	version, err := goose.GetDBVersion(db)
	if err != nil {
		return 0, fmt.Errorf("migration version error: %w", err)
	}
	return version, nil
}
