package ledger

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Write is an edit that has been applied locally and still has to be sent.
type Write struct {
	l     *Ledger
	id    int64
	token string
	row   Transaction
}

// Row is the payload this write sends.
func (w *Write) Row() Transaction { return w.row }

// BeginEdit coerces raw for field, applies it to row id in the local store
// and returns the write that persists it. The new value is visible through
// Rows immediately.
func (l *Ledger) BeginEdit(id int64, field Field, raw string) (*Write, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	e := l.find(id)
	if e == nil {
		return nil, fmt.Errorf("%w: %d", ErrUnknownRow, id)
	}
	row, err := coerce(e.row, field, raw, l.strict)
	if err != nil {
		return nil, err
	}
	e.row = row
	e.token = uuid.NewString()
	e.failed = false
	return &Write{l: l, id: id, token: e.token, row: row}, nil
}

// Commit sends the whole row. If a newer edit of the same row is still in
// flight, this write's outcome does not touch the visible row. A superseded
// write that lands after the newer one finished becomes the visible row,
// since the server now holds it. If this is the newest write and it fails,
// the row reverts to its last stored value.
func (w *Write) Commit(ctx context.Context) error {
	l := w.l
	err := l.txns.Update(ctx, w.id, w.row.values())

	l.mu.Lock()
	defer l.mu.Unlock()
	e := l.find(w.id)
	if e == nil || e.token != w.token {
		switch {
		case err != nil:
			l.log.Printf("edit transaction %d: superseded write failed: %v", w.id, err)
		case e == nil:
		case e.token == "":
			// nothing newer in flight: the server now holds this payload
			e.row, e.confirmed = w.row, w.row
		default:
			e.confirmed = w.row
		}
		return nil
	}
	e.token = ""
	if err != nil {
		e.row = e.confirmed
		e.failed = true
		l.log.Printf("edit transaction %d: %v", w.id, err)
		return fmt.Errorf("edit transaction %d: %w", w.id, err)
	}
	e.confirmed = w.row
	return nil
}

// Edit is BeginEdit followed by Commit.
func (l *Ledger) Edit(ctx context.Context, id int64, field Field, raw string) error {
	w, err := l.BeginEdit(id, field, raw)
	if err != nil {
		return err
	}
	return w.Commit(ctx)
}

func coerce(t Transaction, field Field, raw string, strict bool) (Transaction, error) {
	switch field {
	case FieldAmount:
		d, ok := leadingDecimal(raw)
		if !ok || d.IsNegative() {
			if strict {
				return t, fmt.Errorf("%w: amount %q", ErrInvalidInput, raw)
			}
			d = decimal.Zero
		}
		t.Amount = d
	case FieldVehicle:
		n, ok := leadingInt(raw)
		if !ok && strict {
			return t, fmt.Errorf("%w: vehicle %q", ErrInvalidInput, raw)
		}
		if n == 0 {
			n = 1
		}
		t.Vehicle = &n
	case FieldStatus:
		v := strings.TrimSpace(raw)
		if v == "" {
			t.Status = nil
			break
		}
		s, ok := parseStatus(v)
		if !ok {
			return t, fmt.Errorf("%w: status %q", ErrInvalidInput, raw)
		}
		t.Status = &s
	case FieldType:
		typ, ok := parseType(strings.TrimSpace(raw))
		if !ok {
			return t, fmt.Errorf("%w: type %q", ErrInvalidInput, raw)
		}
		t.Type = typ
	case FieldDate:
		v := strings.TrimSpace(raw)
		if strict && v != "" {
			if _, err := time.Parse("2006-01-02", v); err != nil {
				return t, fmt.Errorf("%w: date %q", ErrInvalidInput, raw)
			}
		}
		t.Date = v
	case FieldDescription:
		d := raw
		t.Description = &d
	default:
		return t, fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	return t, nil
}

func parseStatus(v string) (Status, bool) {
	for _, s := range Statuses {
		if string(s) == v {
			return s, true
		}
	}
	return "", false
}

func parseType(v string) (Type, bool) {
	for _, t := range Types {
		if string(t) == v {
			return t, true
		}
	}
	return "", false
}
