package database

import (
	"context"
	"database/sql"

	"github.com/jask/fleetledger/internal/database/repository"
)

// Every statement below is plain SQL with literals so it runs unchanged on
// both sqlite and postgres.
var defaultFleet = []string{
	`INSERT INTO "Brands"(name) VALUES ('Toyota')`,
	`INSERT INTO "Color"(name) VALUES ('White')`,
	`INSERT INTO "Model"(name, brand, capacity)
	 VALUES ('Hiace', (SELECT id FROM "Brands" WHERE name = 'Toyota'), 15)`,
	`INSERT INTO "Vehicles"(name, type, color, model, model_type, plate_number, year)
	 VALUES ('Van 1', 'Car',
	  (SELECT id FROM "Color" WHERE name = 'White'),
	  (SELECT id FROM "Model" WHERE name = 'Hiace'),
	  'Commuter', 'NAB 1234', 2019)`,
	`INSERT INTO "Vehicles"(name, type, plate_number, year)
	 VALUES ('Rider 1', 'Motorcycle', '123 ABC', 2021)`,
}

var demoTransactions = []string{
	`INSERT INTO "Transactions"(amount, date, description, status, type, vehicle)
	 VALUES (1500, '2025-01-06', 'Weekly boundary', 'Completed', 'Income', (SELECT id FROM "Vehicles" WHERE name = 'Van 1'))`,
	`INSERT INTO "Transactions"(amount, date, description, status, type, vehicle)
	 VALUES (820.50, '2025-01-07', 'Diesel', 'Completed', 'Expense', (SELECT id FROM "Vehicles" WHERE name = 'Van 1'))`,
	`INSERT INTO "Transactions"(amount, date, description, status, type, vehicle)
	 VALUES (600, '2025-01-07', 'Delivery run', 'Pending', 'Income', (SELECT id FROM "Vehicles" WHERE name = 'Rider 1'))`,
	`INSERT INTO "Transactions"(amount, date, description, status, type, vehicle)
	 VALUES (350, '2025-01-09', 'Change oil', 'Not Yet Paid', 'Expense', (SELECT id FROM "Vehicles" WHERE name = 'Rider 1'))`,
}

// SeedDefaults ensures the default vehicle (id 1) exists for new databases.
// It is idempotent and safe to run on every startup.
func SeedDefaults(ctx context.Context, db *sql.DB, dialect repository.Dialect) error {
	vehicles := repository.NewVehicleRepo(db, dialect)
	n, err := vehicles.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	return execAll(ctx, db, defaultFleet)
}

// SeedDemo adds a handful of transactions to an empty ledger.
func SeedDemo(ctx context.Context, db *sql.DB, dialect repository.Dialect) error {
	txns := repository.NewTransactionRepo(db, dialect)
	n, err := txns.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	return execAll(ctx, db, demoTransactions)
}

func execAll(ctx context.Context, db *sql.DB, stmts []string) error {
	return WithTx(ctx, db, func(tx *sql.Tx) error {
		for _, stmt := range stmts {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return err
			}
		}
		return nil
	})
}
