package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"github.com/jask/fleetledger/internal/ledger"
)

const (
	wDate    = 10
	wVehicle = 12
	wStatus  = 17
	wType    = 7
	wMoney   = 14
	gap      = " "
)

func (a *App) descWidth() int {
	fixed := wDate + wVehicle + wStatus + wType + 2*wMoney + 7*len(gap) + 2
	if w := a.width - fixed; w > 12 {
		return w
	}
	return 12
}

// chromeLines is everything View draws besides the rows.
const chromeLines = 12

// window returns the slice of rows that fits the terminal, kept around the cursor.
func (a *App) window() (int, int) {
	n := len(a.rows)
	if a.height <= 0 {
		return 0, n
	}
	size := a.height - chromeLines
	if size < 1 {
		size = 1
	}
	if n <= size {
		return 0, n
	}
	start := a.cursor - size/2
	if start < 0 {
		start = 0
	}
	if start > n-size {
		start = n - size
	}
	return start, start + size
}

func (a *App) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Fleet Ledger"))
	b.WriteString("\n\n")
	b.WriteString(a.renderFilters())
	b.WriteString("\n\n")
	b.WriteString(a.renderHeader())
	b.WriteString("\n")
	if len(a.rows) == 0 {
		b.WriteString(mutedStyle.Render("  no transactions"))
		b.WriteString("\n")
	}
	start, end := a.window()
	for i := start; i < end; i++ {
		b.WriteString(a.renderRow(i, a.rows[i]))
		b.WriteString("\n")
	}
	if end-start < len(a.rows) {
		b.WriteString(mutedStyle.Render(fmt.Sprintf("  rows %d-%d of %d", start+1, end, len(a.rows))))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(a.renderTotals())
	b.WriteString("\n")
	if a.mode == modeEdit {
		b.WriteString(headerStyle.Render("edit "+string(a.editField)+": ") + a.editor.View())
		b.WriteString("\n")
	}
	if a.status != "" {
		if strings.HasPrefix(a.status, "error:") {
			b.WriteString(errorStyle.Render(a.status))
		} else {
			b.WriteString(a.status)
		}
		b.WriteString("\n")
	}
	b.WriteString(a.renderHelp())
	return b.String()
}

func (a *App) renderFilters() string {
	parts := make([]string, 0, len(a.filters))
	for i, f := range ledger.FilterFields {
		label := string(f) + ": "
		value := a.filters[i].View()
		if a.mode != modeFilter && a.filters[i].Value() == "" {
			value = mutedStyle.Render("any")
		}
		if a.mode == modeFilter && i == a.filterCol {
			label = cursorStyle.Render(label)
		} else {
			label = filterStyle.Render(label)
		}
		parts = append(parts, label+value)
	}
	return strings.Join(parts, "  ")
}

func (a *App) renderHeader() string {
	cols := []string{
		cell("Date", wDate),
		cell("Description", a.descWidth()),
		cell("Vehicle", wVehicle),
		cell("Status", wStatus),
		cell("Type", wType),
		cellRight("Income", wMoney),
		cellRight("Expense", wMoney),
	}
	return "  " + headerStyle.Render(strings.Join(cols, gap))
}

func (a *App) renderRow(i int, r ledger.Row) string {
	desc := ""
	if r.Description != nil {
		desc = *r.Description
	}
	vehicle := ""
	if r.Vehicle != nil {
		vehicle = strconv.FormatInt(*r.Vehicle, 10)
		if name, ok := a.ref.VehicleName(*r.Vehicle); ok {
			vehicle = name
		}
	}
	status := ""
	if r.Status != nil {
		status = string(*r.Status)
	}
	income, expense := "", ""
	if r.Type == ledger.TypeIncome {
		income = a.money.format(r.Amount)
	} else {
		expense = a.money.format(r.Amount)
	}

	cells := []string{
		cell(r.Date, wDate),
		cell(desc, a.descWidth()),
		cell(vehicle, wVehicle),
		cell(status, wStatus),
		cell(string(r.Type), wType),
		cellRight(income, wMoney),
		cellRight(expense, wMoney),
	}
	if i == a.cursor && a.mode != modeFilter {
		idx := a.displayCol(r)
		cells[idx] = cursorStyle.Render(cells[idx])
	}
	cells[5] = incomeStyle.Render(cells[5])
	cells[6] = expenseStyle.Render(cells[6])

	marker := "  "
	switch r.State {
	case ledger.Pending:
		marker = pendingStyle.Render("~ ")
	case ledger.Failed:
		marker = failedStyle.Render("! ")
	}
	line := marker + strings.Join(cells, gap)
	if i == a.cursor {
		line = rowStyle.Render(line)
	}
	return line
}

// displayCol maps the focused field to its on-screen column. The amount
// sits under Income or Expense depending on the row type.
func (a *App) displayCol(r ledger.Row) int {
	switch a.field() {
	case ledger.FieldDate:
		return 0
	case ledger.FieldDescription:
		return 1
	case ledger.FieldVehicle:
		return 2
	case ledger.FieldStatus:
		return 3
	case ledger.FieldType:
		return 4
	}
	if r.Type == ledger.TypeIncome {
		return 5
	}
	return 6
}

func (a *App) renderTotals() string {
	t := a.totals
	return headerStyle.Render("Income ") + incomeStyle.Render(a.money.format(t.Income)) +
		headerStyle.Render("   Expense ") + expenseStyle.Render(a.money.format(t.Expense)) +
		headerStyle.Render("   Balance ") + a.money.format(t.Balance)
}

func (a *App) renderHelp() string {
	bindings := a.keys.browseHelp()
	if a.mode == modeFilter {
		bindings = a.keys.filterHelp()
	}
	if a.mode == modeEdit {
		bindings = []key.Binding{a.keys.Edit, a.keys.Cancel}
	}
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, "["+h.Key+"] "+h.Desc)
	}
	return mutedStyle.Render(strings.Join(parts, "  "))
}
