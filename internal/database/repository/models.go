package repository

import (
	"errors"

	"github.com/shopspring/decimal"
)

// ErrNotFound is returned when a write targets a row that does not exist.
var ErrNotFound = errors.New("row not found")

// Transaction represents a row of the "Transactions" table.
type Transaction struct {
	ID          int64
	Amount      decimal.Decimal
	Date        *string // YYYY-MM-DD
	Description *string
	Status      *string
	Type        string
	Vehicle     *int64
}

// TransactionValues is the writable part of a transaction row.
type TransactionValues struct {
	Amount      decimal.Decimal
	Date        *string
	Description *string
	Status      *string
	Type        string
	Vehicle     *int64
}

// Values returns the writable columns of t.
func (t Transaction) Values() TransactionValues {
	return TransactionValues{
		Amount:      t.Amount,
		Date:        t.Date,
		Description: t.Description,
		Status:      t.Status,
		Type:        t.Type,
		Vehicle:     t.Vehicle,
	}
}

// Vehicle represents a vehicle row with its color, model and brand joined in.
type Vehicle struct {
	ID          int64
	Name        string
	Type        string
	ModelType   *string
	PlateNumber *string
	Year        *int64
	Color       *string
	Model       *string
	Brand       *string
	Capacity    *int64
}
