// Package main is the schema migration CLI.
//
// Usage:
//
//	migrate <command>
//
// Commands:
//
//	up         apply all pending migrations
//	up-by-one  apply the next pending migration
//	down       roll back the most recent migration
//	redo       roll back the most recent migration and re-apply it
//	status     print applied/pending state of all migrations
//	version    print the current schema version
//	create     scaffold a new SQL migration in ./migrations
//
// The database connection comes from DATABASE_URL.
package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log/slog"
	"os"

	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"

	"github.com/rosterhq/roster/internal/config"
	"github.com/rosterhq/roster/migrations"
)

func main() {
	flag.Usage = usage
	flag.Parse()

	args := flag.Args()
	if len(args) < 1 {
		usage()
		os.Exit(2)
	}
	command := args[0]

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	// create scaffolds a file on disk and needs no database.
	if command == "create" {
		if len(args) < 2 {
			logger.Error("create requires a migration name")
			os.Exit(2)
		}
		if err := createMigration(args[1]); err != nil {
			logger.Error("failed to create migration", "error", err)
			os.Exit(1)
		}
		return
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := run(command, db, logger); err != nil {
		logger.Error("migration failed", "command", command, "error", err)
		os.Exit(1)
	}
}

func run(command string, db *sql.DB, logger *slog.Logger) error {
	switch command {
	case "up":
		return migrations.Up(db)
	case "up-by-one":
		return migrations.UpByOne(db)
	case "down":
		return migrations.Down(db)
	case "redo":
		return migrations.Redo(db)
	case "status":
		return migrations.Status(db)
	case "version":
		version, err := migrations.Version(db)
		if err != nil {
			return err
		}
		logger.Info("current schema version", "version", version)
		return nil
	default:
		return fmt.Errorf("unknown command %q", command)
	}
}

// createMigration scaffolds a timestamped SQL migration in ./migrations.
func createMigration(name string) error {
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set dialect: %w", err)
	}
	return goose.Create(nil, "migrations", name, "sql")
}

func usage() {
	fmt.Fprintf(os.Stderr, "usage: migrate <up|up-by-one|down|redo|status|version|create NAME>\n")
	flag.PrintDefaults()
}
