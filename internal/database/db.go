package database

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/jask/fleetledger/internal/config"
	"github.com/jask/fleetledger/internal/database/repository"
)

// Open opens sqlite with sensible defaults.
func Open(path string) (*sql.DB, error) {
	dsn := fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=5000", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1) // sqlite
	db.SetConnMaxLifetime(0)
	return db, nil
}

// Connect opens the backend named by cfg.Driver and reports which SQL
// dialect the repositories should speak to it.
func Connect(ctx context.Context, cfg config.DatabaseConfig) (*sql.DB, repository.Dialect, error) {
	switch cfg.Driver {
	case "sqlite", "":
		db, err := Open(cfg.Path)
		if err != nil {
			return nil, repository.Dialect{}, fmt.Errorf("open sqlite: %w", err)
		}
		if err := db.PingContext(ctx); err != nil {
			_ = db.Close()
			return nil, repository.Dialect{}, fmt.Errorf("ping sqlite: %w", err)
		}
		return db, repository.SQLite, nil
	case "postgres":
		db, err := OpenPostgres(cfg.URL)
		if err != nil {
			return nil, repository.Dialect{}, err
		}
		if err := waitForPostgres(ctx, db); err != nil {
			_ = db.Close()
			return nil, repository.Dialect{}, err
		}
		return db, repository.Postgres, nil
	default:
		return nil, repository.Dialect{}, fmt.Errorf("unknown database driver %q", cfg.Driver)
	}
}

// WithTx runs fn in a transaction.
func WithTx(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}
