package database

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	migratedb "github.com/golang-migrate/migrate/v4/database"
	pgxmigrate "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/jask/fleetledger/internal/config"
	"github.com/jask/fleetledger/internal/database/repository"
)

//go:embed migrations
var migrationsFS embed.FS

// RunMigrations applies all up migrations for the configured backend.
// It uses its own connection; migrate closes the handle it is given.
func RunMigrations(cfg config.DatabaseConfig) error {
	var (
		db      *sql.DB
		dialect repository.Dialect
		err     error
	)
	switch cfg.Driver {
	case "sqlite", "":
		dialect = repository.SQLite
		db, err = Open(cfg.Path)
	case "postgres":
		dialect = repository.Postgres
		db, err = OpenPostgres(cfg.URL)
	default:
		return fmt.Errorf("unknown database driver %q", cfg.Driver)
	}
	if err != nil {
		return err
	}

	driver, err := migrationDriver(db, dialect)
	if err != nil {
		_ = db.Close()
		return fmt.Errorf("migration driver: %w", err)
	}
	src, err := iofs.New(migrationsFS, "migrations/"+dialect.Name)
	if err != nil {
		_ = driver.Close()
		return fmt.Errorf("migration source: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, dialect.Name, driver)
	if err != nil {
		_ = src.Close()
		_ = driver.Close()
		return err
	}
	defer m.Close()

	err = m.Up()
	if errors.Is(err, migrate.ErrNoChange) {
		return nil
	}
	return err
}

func migrationDriver(db *sql.DB, dialect repository.Dialect) (migratedb.Driver, error) {
	if dialect == repository.Postgres {
		return pgxmigrate.WithInstance(db, &pgxmigrate.Config{})
	}
	return sqlite3.WithInstance(db, &sqlite3.Config{})
}
