package ledger

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/jask/fleetledger/internal/database/repository"
)

// TransactionGateway is the remote "Transactions" table.
type TransactionGateway interface {
	Select(ctx context.Context, f repository.TransactionFilters) ([]repository.Transaction, error)
	Insert(ctx context.Context, v repository.TransactionValues) (repository.Transaction, error)
	Update(ctx context.Context, id int64, v repository.TransactionValues) error
	Delete(ctx context.Context, id int64) error
}

// VehicleGateway is the remote vehicle list.
type VehicleGateway interface {
	List(ctx context.Context) ([]repository.Vehicle, error)
}

// VehicleCache is an optional read-through cache for the vehicle list.
// Implementations treat every failure as a miss.
type VehicleCache interface {
	GetVehicles(ctx context.Context) ([]repository.Vehicle, bool)
	SetVehicles(ctx context.Context, vehicles []repository.Vehicle)
}

// Options tunes a Ledger.
type Options struct {
	Logger      *log.Logger
	StrictInput bool
	Cache       VehicleCache
}

// entry is one row of the local store.
type entry struct {
	row       Transaction // what the user sees, including unconfirmed edits
	confirmed Transaction // last value known to be stored remotely
	token     string      // newest in-flight write, empty when none
	failed    bool
}

func (e *entry) state() SyncState {
	switch {
	case e.token != "":
		return Pending
	case e.failed:
		return Failed
	default:
		return Synced
	}
}

// Ledger keeps an in-memory table of transactions in sync with the remote
// table. All methods are safe for concurrent use; gateway calls run without
// holding the lock.
type Ledger struct {
	txns     TransactionGateway
	vehicles VehicleGateway
	cache    VehicleCache
	log      *log.Logger
	strict   bool

	mu       sync.Mutex
	rows     []*entry
	preds    Predicates
	ref      Reference
	fetchGen uint64
}

func New(txns TransactionGateway, vehicles VehicleGateway, opts Options) *Ledger {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Ledger{
		txns:     txns,
		vehicles: vehicles,
		cache:    opts.Cache,
		log:      logger,
		strict:   opts.StrictInput,
		ref:      staticReference(nil),
	}
}

// Rows returns a snapshot of the store in display order.
func (l *Ledger) Rows() []Row {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Row, len(l.rows))
	for i, e := range l.rows {
		out[i] = Row{Transaction: e.row, State: e.state()}
	}
	return out
}

// Transactions returns the visible transactions in display order.
func (l *Ledger) Transactions() []Transaction {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Transaction, len(l.rows))
	for i, e := range l.rows {
		out[i] = e.row
	}
	return out
}

// Row returns the visible value of row id.
func (l *Ledger) Row(id int64) (Row, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	e := l.find(id)
	if e == nil {
		return Row{}, false
	}
	return Row{Transaction: e.row, State: e.state()}, true
}

// Totals sums the visible rows.
func (l *Ledger) Totals() Totals {
	return ComputeTotals(l.Transactions())
}

// Predicates returns the current filter set.
func (l *Ledger) Predicates() Predicates {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.preds
}

// StrictInput reports whether unparseable numeric input is rejected.
func (l *Ledger) StrictInput() bool { return l.strict }

func (l *Ledger) find(id int64) *entry {
	for _, e := range l.rows {
		if e.row.ID == id {
			return e
		}
	}
	return nil
}

func (l *Ledger) fail(op string, err error) error {
	l.log.Printf("%s: %v", op, err)
	return fmt.Errorf("%s: %w", op, err)
}

// Load fetches every transaction, newest first, and replaces the store.
// On failure the store is left as it was.
func (l *Ledger) Load(ctx context.Context) error {
	return l.fetch(ctx, Predicates{}, "load transactions")
}

// Reload re-runs the fetch with the current filters.
func (l *Ledger) Reload(ctx context.Context) error {
	return l.fetch(ctx, l.Predicates(), "reload transactions")
}

// fetch replaces the store with the rows matching p. A result is dropped if
// another fetch started after this one.
func (l *Ledger) fetch(ctx context.Context, p Predicates, op string) error {
	l.mu.Lock()
	l.fetchGen++
	gen := l.fetchGen
	l.mu.Unlock()

	rows, err := l.txns.Select(ctx, p.filters())
	if err != nil {
		return l.fail(op, err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if gen != l.fetchGen {
		return nil
	}
	next := make([]*entry, 0, len(rows))
	for _, r := range rows {
		t := fromRepo(r)
		if old := l.find(t.ID); old != nil && old.token != "" {
			// keep showing the unconfirmed edit
			next = append(next, &entry{row: old.row, confirmed: t, token: old.token})
			continue
		}
		next = append(next, &entry{row: t, confirmed: t})
	}
	l.rows = next
	return nil
}

// SetFilter parses raw for field, merges it into the filter set and fetches
// the matching rows.
func (l *Ledger) SetFilter(ctx context.Context, field Field, raw string) error {
	m, err := ParseFilter(field, raw, l.strict)
	if err != nil {
		return err
	}
	return l.Filter(ctx, field, m)
}

// Filter sets one column's match and fetches the matching rows.
func (l *Ledger) Filter(ctx context.Context, field Field, m Match) error {
	l.mu.Lock()
	p, err := l.preds.With(field, m)
	if err != nil {
		l.mu.Unlock()
		return err
	}
	l.preds = p
	l.mu.Unlock()
	return l.fetch(ctx, p, "filter transactions")
}

// ClearFilters drops every filter and reloads all rows.
func (l *Ledger) ClearFilters(ctx context.Context) error {
	l.mu.Lock()
	l.preds = Predicates{}
	l.mu.Unlock()
	return l.fetch(ctx, Predicates{}, "clear filters")
}

// Add inserts a row with the default values and prepends what the server
// stored. Nothing changes locally on failure.
func (l *Ledger) Add(ctx context.Context) (Transaction, error) {
	desc := ""
	status := string(StatusNotYetPaid)
	vehicle := int64(1)
	stored, err := l.txns.Insert(ctx, repository.TransactionValues{
		Amount:      decimal.Zero,
		Description: &desc,
		Status:      &status,
		Type:        string(TypeIncome),
		Vehicle:     &vehicle,
	})
	if err != nil {
		return Transaction{}, l.fail("add transaction", err)
	}
	t := fromRepo(stored)

	l.mu.Lock()
	defer l.mu.Unlock()
	if e := l.find(t.ID); e != nil {
		// a concurrent fetch already picked it up
		e.row, e.confirmed = t, t
		return t, nil
	}
	l.rows = append([]*entry{{row: t, confirmed: t}}, l.rows...)
	return t, nil
}

// Delete removes row id remotely and then locally. A row the server no
// longer has is removed locally without error.
func (l *Ledger) Delete(ctx context.Context, id int64) error {
	err := l.txns.Delete(ctx, id)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return l.fail(fmt.Sprintf("delete transaction %d", id), err)
	}
	if err != nil {
		l.log.Printf("delete transaction %d: already gone", id)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	for i, e := range l.rows {
		if e.row.ID == id {
			l.rows = append(l.rows[:i:i], l.rows[i+1:]...)
			break
		}
	}
	return nil
}
