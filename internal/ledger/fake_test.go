package ledger

import (
	"context"
	"errors"
	"io"
	"log"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/jask/fleetledger/internal/database/repository"
)

var errGateway = errors.New("gateway unavailable")

// fakeTxns is a scripted TransactionGateway. Nil funcs fall back to an
// in-memory table.
type fakeTxns struct {
	mu     sync.Mutex
	rows   []repository.Transaction
	nextID int64

	selects []repository.TransactionFilters
	updates []repository.TransactionValues

	selectFn func(ctx context.Context, f repository.TransactionFilters) ([]repository.Transaction, error)
	insertFn func(ctx context.Context, v repository.TransactionValues) (repository.Transaction, error)
	updateFn func(ctx context.Context, id int64, v repository.TransactionValues) error
	deleteFn func(ctx context.Context, id int64) error
}

func (f *fakeTxns) Select(ctx context.Context, flt repository.TransactionFilters) ([]repository.Transaction, error) {
	f.mu.Lock()
	f.selects = append(f.selects, flt)
	fn := f.selectFn
	rows := append([]repository.Transaction(nil), f.rows...)
	f.mu.Unlock()
	if fn != nil {
		return fn(ctx, flt)
	}
	return rows, nil
}

func (f *fakeTxns) Insert(ctx context.Context, v repository.TransactionValues) (repository.Transaction, error) {
	if f.insertFn != nil {
		return f.insertFn(ctx, v)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	t := repository.Transaction{
		ID: 100 + f.nextID, Amount: v.Amount, Date: v.Date, Description: v.Description,
		Status: v.Status, Type: v.Type, Vehicle: v.Vehicle,
	}
	f.rows = append([]repository.Transaction{t}, f.rows...)
	return t, nil
}

func (f *fakeTxns) Update(ctx context.Context, id int64, v repository.TransactionValues) error {
	f.mu.Lock()
	f.updates = append(f.updates, v)
	fn := f.updateFn
	f.mu.Unlock()
	if fn != nil {
		return fn(ctx, id, v)
	}
	return nil
}

func (f *fakeTxns) Delete(ctx context.Context, id int64) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, r := range f.rows {
		if r.ID == id {
			f.rows = append(f.rows[:i], f.rows[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (f *fakeTxns) lastSelect() repository.TransactionFilters {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.selects[len(f.selects)-1]
}

func (f *fakeTxns) selectCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.selects)
}

type fakeVehicles struct {
	calls    int
	vehicles []repository.Vehicle
	err      error
}

func (f *fakeVehicles) List(context.Context) ([]repository.Vehicle, error) {
	f.calls++
	return f.vehicles, f.err
}

type memCache struct {
	vehicles []repository.Vehicle
	sets     int
}

func (c *memCache) GetVehicles(context.Context) ([]repository.Vehicle, bool) {
	return c.vehicles, c.vehicles != nil
}

func (c *memCache) SetVehicles(_ context.Context, v []repository.Vehicle) {
	c.sets++
	c.vehicles = v
}

func quietLogger() *log.Logger { return log.New(io.Discard, "", 0) }

func strPtr(s string) *string { return &s }
func intPtr(n int64) *int64   { return &n }

func repoRow(id int64, amount string, typ string) repository.Transaction {
	return repository.Transaction{
		ID:          id,
		Amount:      decimal.RequireFromString(amount),
		Date:        strPtr("2025-01-05"),
		Description: strPtr("row"),
		Status:      strPtr("Pending"),
		Type:        typ,
		Vehicle:     intPtr(1),
	}
}

func newTestLedger(txns *fakeTxns, opts Options) *Ledger {
	if opts.Logger == nil {
		opts.Logger = quietLogger()
	}
	return New(txns, &fakeVehicles{}, opts)
}
