package database

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
)

const (
	pingAttempts = 5
	pingInterval = 2 * time.Second
)

// OpenPostgres opens a database/sql handle backed by pgx.
func OpenPostgres(url string) (*sql.DB, error) {
	if url == "" {
		return nil, fmt.Errorf("postgres url is empty")
	}
	// pgx wants the short scheme
	if strings.HasPrefix(url, "postgresql://") {
		url = "postgres://" + strings.TrimPrefix(url, "postgresql://")
	}
	cfg, err := pgx.ParseConfig(url)
	if err != nil {
		return nil, fmt.Errorf("parse postgres url: %w", err)
	}
	db := stdlib.OpenDB(*cfg)
	db.SetMaxOpenConns(8)
	db.SetConnMaxIdleTime(5 * time.Minute)
	return db, nil
}

func waitForPostgres(ctx context.Context, db *sql.DB) error {
	var err error
	for i := 0; i < pingAttempts; i++ {
		pingCtx, cancel := context.WithTimeout(ctx, pingInterval)
		err = db.PingContext(pingCtx)
		cancel()
		if err == nil {
			return nil
		}
		log.Printf("waiting for postgres (%d/%d): %v", i+1, pingAttempts, err)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(pingInterval):
		}
	}
	return fmt.Errorf("ping postgres: %w", err)
}
