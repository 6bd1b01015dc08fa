package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
)

// TransactionFilters defines list filters. A nil field means no constraint.
type TransactionFilters struct {
	Date        *string
	Description *string // case-insensitive substring
	Vehicle     *int64
	Type        *string
	Amount      *int64
}

// TransactionRepo handles transactions.
type TransactionRepo struct {
	db      *sql.DB
	dialect Dialect
}

func NewTransactionRepo(db *sql.DB, dialect Dialect) *TransactionRepo {
	return &TransactionRepo{db: db, dialect: dialect}
}

func (r *TransactionRepo) columns() string {
	return "id, amount, " + r.dialect.dateCol + ", description, status, type, vehicle"
}

// Select lists transactions matching every filter, most recently created first.
func (r *TransactionRepo) Select(ctx context.Context, f TransactionFilters) ([]Transaction, error) {
	b := &binder{d: r.dialect}
	var where []string

	if f.Date != nil {
		where = append(where, `"date" = `+b.bindDate(*f.Date))
	}
	if f.Vehicle != nil {
		where = append(where, "vehicle = "+b.bind(*f.Vehicle))
	}
	if f.Type != nil {
		where = append(where, "type = "+b.bind(*f.Type))
	}
	if f.Amount != nil {
		where = append(where, "amount = "+b.bind(*f.Amount))
	}
	if f.Description != nil {
		where = append(where, "LOWER(description) LIKE LOWER("+b.bind("%"+*f.Description+"%")+")")
	}

	query := `SELECT ` + r.columns() + ` FROM "Transactions"`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY created_at DESC, id DESC"

	rows, err := r.db.QueryContext(ctx, query, b.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Transaction{}
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// Insert creates a row and returns it as stored, including its new id.
func (r *TransactionRepo) Insert(ctx context.Context, v TransactionValues) (Transaction, error) {
	b := &binder{d: r.dialect}
	query := `INSERT INTO "Transactions"(amount, date, description, status, type, vehicle) VALUES (` +
		strings.Join([]string{
			b.bind(v.Amount),
			b.bindDate(nullableString(v.Date)),
			b.bind(nullableString(v.Description)),
			b.bind(nullableString(v.Status)),
			b.bind(v.Type),
			b.bind(nullableInt(v.Vehicle)),
		}, ", ") + `) RETURNING ` + r.columns()
	return scanTransaction(r.db.QueryRowContext(ctx, query, b.args...))
}

// Update overwrites every writable column of row id.
func (r *TransactionRepo) Update(ctx context.Context, id int64, v TransactionValues) error {
	b := &binder{d: r.dialect}
	query := `UPDATE "Transactions" SET ` + strings.Join([]string{
		"amount = " + b.bind(v.Amount),
		`"date" = ` + b.bindDate(nullableString(v.Date)),
		"description = " + b.bind(nullableString(v.Description)),
		"status = " + b.bind(nullableString(v.Status)),
		"type = " + b.bind(v.Type),
		"vehicle = " + b.bind(nullableInt(v.Vehicle)),
	}, ", ") + " WHERE id = " + b.bind(id)
	res, err := r.db.ExecContext(ctx, query, b.args...)
	if err != nil {
		return err
	}
	return expectOne(res)
}

// Delete removes row id. Deleting a missing row reports ErrNotFound.
func (r *TransactionRepo) Delete(ctx context.Context, id int64) error {
	b := &binder{d: r.dialect}
	res, err := r.db.ExecContext(ctx, `DELETE FROM "Transactions" WHERE id = `+b.bind(id), b.args...)
	if err != nil {
		return err
	}
	return expectOne(res)
}

// Get returns a single row, or ErrNotFound.
func (r *TransactionRepo) Get(ctx context.Context, id int64) (Transaction, error) {
	b := &binder{d: r.dialect}
	row := r.db.QueryRowContext(ctx, `SELECT `+r.columns()+` FROM "Transactions" WHERE id = `+b.bind(id), b.args...)
	t, err := scanTransaction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Transaction{}, ErrNotFound
	}
	return t, err
}

func (r *TransactionRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM "Transactions"`).Scan(&n)
	return n, err
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanTransaction(row scanner) (Transaction, error) {
	var t Transaction
	var date, desc, status sql.NullString
	var vehicle sql.NullInt64
	if err := row.Scan(&t.ID, &t.Amount, &date, &desc, &status, &t.Type, &vehicle); err != nil {
		return Transaction{}, err
	}
	if date.Valid {
		t.Date = &date.String
	}
	if desc.Valid {
		t.Description = &desc.String
	}
	if status.Valid {
		t.Status = &status.String
	}
	if vehicle.Valid {
		t.Vehicle = &vehicle.Int64
	}
	return t, nil
}

func expectOne(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func nullableString(s *string) interface{} {
	if s == nil {
		return nil
	}
	return *s
}

func nullableInt(n *int64) interface{} {
	if n == nil {
		return nil
	}
	return *n
}
