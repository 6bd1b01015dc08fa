package ledger

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jask/fleetledger/internal/database/repository"
)

// MatchKind tags the variant held by a Match.
type MatchKind int

const (
	Unconstrained MatchKind = iota
	Exact
	Substring
)

// Match constrains one column. Text is used for date, type and description;
// Number for vehicle and amount.
type Match struct {
	Kind   MatchKind
	Text   string
	Number int64
}

func (m Match) String() string {
	switch m.Kind {
	case Exact:
		if m.Text != "" {
			return m.Text
		}
		return strconv.FormatInt(m.Number, 10)
	case Substring:
		return m.Text
	default:
		return ""
	}
}

// MarshalText renders the match as the raw filter input that would produce it.
func (m Match) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

// Predicates holds one Match per filterable column.
type Predicates struct {
	Date        Match `json:"date"`
	Description Match `json:"description"`
	Vehicle     Match `json:"vehicle"`
	Type        Match `json:"type"`
	Amount      Match `json:"amount"`
}

// Get returns the match for field.
func (p Predicates) Get(field Field) Match {
	switch field {
	case FieldDate:
		return p.Date
	case FieldDescription:
		return p.Description
	case FieldVehicle:
		return p.Vehicle
	case FieldType:
		return p.Type
	case FieldAmount:
		return p.Amount
	}
	return Match{}
}

// With returns a copy of p with field set to m.
func (p Predicates) With(field Field, m Match) (Predicates, error) {
	switch field {
	case FieldDate:
		p.Date = m
	case FieldDescription:
		p.Description = m
	case FieldVehicle:
		p.Vehicle = m
	case FieldType:
		p.Type = m
	case FieldAmount:
		p.Amount = m
	default:
		return p, fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	return p, nil
}

// Active reports whether any column is constrained.
func (p Predicates) Active() bool {
	return p != Predicates{}
}

func (p Predicates) filters() repository.TransactionFilters {
	var f repository.TransactionFilters
	if p.Date.Kind != Unconstrained {
		v := p.Date.Text
		f.Date = &v
	}
	if p.Description.Kind != Unconstrained {
		v := p.Description.Text
		f.Description = &v
	}
	if p.Vehicle.Kind != Unconstrained {
		v := p.Vehicle.Number
		f.Vehicle = &v
	}
	if p.Type.Kind != Unconstrained {
		v := p.Type.Text
		f.Type = &v
	}
	if p.Amount.Kind != Unconstrained {
		v := p.Amount.Number
		f.Amount = &v
	}
	return f
}

// ParseFilter turns raw filter input into a Match. Blank input clears the
// column. Vehicle and amount take the leading integer of the input; input
// without one leaves the column unconstrained, or fails with ErrInvalidInput
// when strict is set.
func ParseFilter(field Field, raw string, strict bool) (Match, error) {
	v := strings.TrimSpace(raw)
	switch field {
	case FieldDate, FieldType:
		if v == "" {
			return Match{}, nil
		}
		return Match{Kind: Exact, Text: v}, nil
	case FieldDescription:
		if v == "" {
			return Match{}, nil
		}
		return Match{Kind: Substring, Text: v}, nil
	case FieldVehicle, FieldAmount:
		if v == "" {
			return Match{}, nil
		}
		n, ok := leadingInt(v)
		if !ok {
			if strict {
				return Match{}, fmt.Errorf("%w: %s filter %q is not a number", ErrInvalidInput, field, raw)
			}
			return Match{}, nil
		}
		return Match{Kind: Exact, Number: n}, nil
	}
	return Match{}, fmt.Errorf("%w: %q", ErrUnknownField, field)
}
