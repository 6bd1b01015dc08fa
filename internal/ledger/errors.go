package ledger

import "errors"

var (
	// ErrUnknownRow means the id is not in the local store.
	ErrUnknownRow = errors.New("unknown row")
	// ErrUnknownField means the field name is not a transaction column.
	ErrUnknownField = errors.New("unknown field")
	// ErrInvalidInput means a value could not be coerced for its column.
	ErrInvalidInput = errors.New("invalid input")
)
