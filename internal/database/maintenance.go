package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jask/fleetledger/internal/database/repository"
)

// ResetLedger deletes every transaction and keeps the fleet reference tables,
// so the default vehicle still resolves afterwards.
func ResetLedger(ctx context.Context, db *sql.DB, dialect repository.Dialect) error {
	if db == nil {
		return fmt.Errorf("reset: db not configured")
	}
	if err := WithTx(ctx, db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM "Transactions"`); err != nil {
			return fmt.Errorf("reset transactions: %w", err)
		}
		return nil
	}); err != nil {
		return err
	}
	if dialect == repository.SQLite {
		_, _ = db.ExecContext(ctx, "VACUUM")
	}
	return nil
}
