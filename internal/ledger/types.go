package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jask/fleetledger/internal/database/repository"
)

// Status is the payment state of a transaction.
type Status string

const (
	StatusNotYetPaid      Status = "Not Yet Paid"
	StatusPending         Status = "Pending"
	StatusCompleted       Status = "Completed"
	StatusMissingInAction Status = "Missing in Action"
)

// Statuses lists every status in display order.
var Statuses = []Status{StatusNotYetPaid, StatusPending, StatusCompleted, StatusMissingInAction}

// Type says which side of the ledger a transaction's amount counts toward.
type Type string

const (
	TypeIncome  Type = "Income"
	TypeExpense Type = "Expense"
)

// Types lists every transaction type in display order.
var Types = []Type{TypeIncome, TypeExpense}

// VehicleType is stored on vehicles but not used by the ledger itself.
type VehicleType string

const (
	VehicleCar        VehicleType = "Car"
	VehicleMotorcycle VehicleType = "Motorcycle"
)

// Transaction is one ledger row as held in memory.
type Transaction struct {
	ID          int64           `json:"id"`
	Amount      decimal.Decimal `json:"amount"`
	Date        string          `json:"date"`
	Description *string         `json:"description"`
	Status      *Status         `json:"status"`
	Type        Type            `json:"type"`
	Vehicle     *int64          `json:"vehicle"`
}

// VehicleOption is an entry of the vehicle dropdown.
type VehicleOption struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Field names a transaction column.
type Field string

const (
	FieldDate        Field = "date"
	FieldDescription Field = "description"
	FieldVehicle     Field = "vehicle"
	FieldType        Field = "type"
	FieldAmount      Field = "amount"
	FieldStatus      Field = "status"
)

// FilterFields are the columns the filter row can constrain, in display order.
var FilterFields = []Field{FieldDate, FieldDescription, FieldVehicle, FieldType, FieldAmount}

// EditFields are the columns a row editor can change, in display order.
var EditFields = []Field{FieldDate, FieldDescription, FieldVehicle, FieldStatus, FieldType, FieldAmount}

// SyncState reports how a row relates to the remote table.
type SyncState int

const (
	Synced SyncState = iota
	Pending
	Failed
)

func (s SyncState) String() string {
	switch s {
	case Pending:
		return "pending"
	case Failed:
		return "failed"
	default:
		return "synced"
	}
}

func (s SyncState) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// Row is a transaction plus its sync state.
type Row struct {
	Transaction
	State SyncState `json:"state"`
}

func fromRepo(r repository.Transaction) Transaction {
	t := Transaction{
		ID:          r.ID,
		Amount:      r.Amount,
		Description: r.Description,
		Type:        Type(r.Type),
		Vehicle:     r.Vehicle,
	}
	if r.Date != nil {
		t.Date = *r.Date
	}
	if r.Status != nil {
		s := Status(*r.Status)
		t.Status = &s
	}
	return t
}

func (t Transaction) values() repository.TransactionValues {
	v := repository.TransactionValues{
		Amount:      t.Amount,
		Description: t.Description,
		Type:        string(t.Type),
		Vehicle:     t.Vehicle,
	}
	if t.Date != "" {
		d := t.Date
		v.Date = &d
	}
	if t.Status != nil {
		s := string(*t.Status)
		v.Status = &s
	}
	return v
}

func (t Transaction) String() string {
	return fmt.Sprintf("#%d %s %s %s", t.ID, t.Date, t.Type, t.Amount)
}
