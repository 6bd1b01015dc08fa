package repository

import "strconv"

// Dialect captures the SQL differences between the sqlite and postgres backends.
type Dialect struct {
	Name     string
	numbered bool   // $1 placeholders instead of ?
	dateCol  string // select expression yielding YYYY-MM-DD text
	dateCast string
}

var (
	SQLite   = Dialect{Name: "sqlite", dateCol: `"date"`}
	Postgres = Dialect{Name: "postgres", numbered: true, dateCol: `to_char("date", 'YYYY-MM-DD')`, dateCast: "::date"}
)

// binder collects positional arguments and hands back the placeholder for each.
type binder struct {
	d    Dialect
	args []interface{}
}

func (b *binder) bind(v interface{}) string {
	b.args = append(b.args, v)
	if b.d.numbered {
		return "$" + strconv.Itoa(len(b.args))
	}
	return "?"
}

func (b *binder) bindDate(v interface{}) string {
	return b.bind(v) + b.d.dateCast
}
