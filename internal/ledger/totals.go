package ledger

import "github.com/shopspring/decimal"

// Totals is the footer of the grid.
type Totals struct {
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Balance decimal.Decimal `json:"balance"`
}

// ComputeTotals sums Income rows into Income and every other row into Expense.
func ComputeTotals(rows []Transaction) Totals {
	income, expense := decimal.Zero, decimal.Zero
	for _, r := range rows {
		if r.Type == TypeIncome {
			income = income.Add(r.Amount)
		} else {
			expense = expense.Add(r.Amount)
		}
	}
	return Totals{Income: income, Expense: expense, Balance: income.Sub(expense)}
}
