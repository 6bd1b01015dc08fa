package ledger

import (
	"fmt"
	"io"
	"strings"
)

// ExportFileName is the name the CSV download is saved under.
const ExportFileName = "budget_template.csv"

// Layout picks how the Income and Expense columns are filled.
type Layout string

const (
	// LayoutSplit puts the amount under Income or Expense according to the row type.
	LayoutSplit Layout = "split"
	// LayoutLegacy writes the amount under Income and the type name under Expense.
	LayoutLegacy Layout = "legacy"
)

func ParseLayout(s string) (Layout, error) {
	switch Layout(s) {
	case LayoutSplit, LayoutLegacy:
		return Layout(s), nil
	case "":
		return LayoutSplit, nil
	}
	return "", fmt.Errorf("%w: csv layout %q", ErrInvalidInput, s)
}

const csvHeader = "Date,Description,Category,Income,Expense"

// WriteCSV writes rows in order. Lines are separated by "\n" with no
// trailing newline; Description and Category are always quoted.
func WriteCSV(w io.Writer, rows []Transaction, layout Layout) error {
	lines := make([]string, 0, len(rows)+1)
	lines = append(lines, csvHeader)
	for _, r := range rows {
		desc := ""
		if r.Description != nil {
			desc = *r.Description
		}
		var income, expense string
		switch layout {
		case LayoutLegacy:
			income, expense = r.Amount.String(), string(r.Type)
		default:
			if r.Type == TypeIncome {
				income = r.Amount.String()
			} else {
				expense = r.Amount.String()
			}
		}
		lines = append(lines, strings.Join([]string{
			r.Date, quote(desc), quote(string(r.Type)), income, expense,
		}, ","))
	}
	_, err := io.WriteString(w, strings.Join(lines, "\n"))
	return err
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
