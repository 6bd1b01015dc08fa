package tui

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/fleetledger/internal/config"
	"github.com/jask/fleetledger/internal/ledger"
)

// App is the ledger grid.
type App struct {
	ctx    context.Context
	ledger *ledger.Ledger
	cfg    config.Config
	keys   keyMap
	money  moneyFormatter
	layout ledger.Layout

	rows   []ledger.Row
	totals ledger.Totals
	ref    ledger.Reference

	mode   mode
	cursor int // row
	col    int // index into ledger.EditFields
	width  int
	height int // 0 until the first WindowSizeMsg
	status string

	editor    textinput.Model
	editingID int64
	editField ledger.Field

	filterCol int
	filters   []textinput.Model // one per ledger.FilterFields
	applied   []string          // raw value last applied per filter
	vehicleAt int               // -1 when the vehicle filter is off
	typeAt    int               // -1 when the type filter is off
}

type mode string

const (
	modeBrowse mode = "browse"
	modeEdit   mode = "edit"
	modeFilter mode = "filter"
)

var completeDate = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

func New(ctx context.Context, cfg config.Config, l *ledger.Ledger) *App {
	layout, err := ledger.ParseLayout(cfg.Export.Layout)
	if err != nil {
		layout = ledger.LayoutSplit
	}
	a := &App{
		ctx:       ctx,
		ledger:    l,
		cfg:       cfg,
		keys:      newKeyMap(),
		money:     newMoneyFormatter(cfg.UI.CurrencySymbol),
		layout:    layout,
		mode:      modeBrowse,
		width:     110,
		editor:    newInput(""),
		vehicleAt: -1,
		typeAt:    -1,
		ref:       l.Reference(),
	}
	for _, f := range ledger.FilterFields {
		a.filters = append(a.filters, newInput(string(f)))
		a.applied = append(a.applied, "")
	}
	return a
}

func newInput(placeholder string) textinput.Model {
	in := textinput.New()
	in.Prompt = ""
	in.Placeholder = placeholder
	in.Cursor.SetMode(cursor.CursorStatic)
	return in
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(a.loadReferenceCmd(), a.loadCmd())
}

// snapshot copies the ledger state the view reads.
func (a *App) snapshot() {
	a.rows = a.ledger.Rows()
	a.totals = ledger.ComputeTotals(transactionsOf(a.rows))
	a.ref = a.ledger.Reference()
	if a.cursor >= len(a.rows) {
		a.cursor = len(a.rows) - 1
	}
	if a.cursor < 0 {
		a.cursor = 0
	}
}

func transactionsOf(rows []ledger.Row) []ledger.Transaction {
	out := make([]ledger.Transaction, len(rows))
	for i, r := range rows {
		out[i] = r.Transaction
	}
	return out
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = m.Width, m.Height
	case tea.KeyMsg:
		if key.Matches(m, a.keys.Force) {
			return a, tea.Quit
		}
		switch a.mode {
		case modeEdit:
			return a.handleEditKey(m)
		case modeFilter:
			return a.handleFilterKey(m)
		}
		return a.handleBrowseKey(m)
	case statusMsg:
		a.status = string(m)
		a.snapshot()
	case errMsg:
		a.status = "error: " + m.Error()
		a.snapshot()
	case referenceMsg:
		a.snapshot()
	case filterMsg:
		if m.err != nil {
			a.status = "error: " + m.err.Error()
		} else {
			a.applied[m.index] = m.raw
			a.status = fmt.Sprintf("%d rows match", len(a.ledger.Rows()))
		}
		a.snapshot()
	}
	return a, nil
}

func (a *App) handleBrowseKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(m, a.keys.Quit):
		return a, tea.Quit
	case key.Matches(m, a.keys.Up):
		if a.cursor > 0 {
			a.cursor--
		}
	case key.Matches(m, a.keys.Down):
		if a.cursor < len(a.rows)-1 {
			a.cursor++
		}
	case key.Matches(m, a.keys.Prev):
		a.moveCol(-1)
	case key.Matches(m, a.keys.Next):
		a.moveCol(1)
	case key.Matches(m, a.keys.Left):
		if a.enumColumn() {
			return a, a.cycleCell(-1)
		}
		a.moveCol(-1)
	case key.Matches(m, a.keys.Right):
		if a.enumColumn() {
			return a, a.cycleCell(1)
		}
		a.moveCol(1)
	case key.Matches(m, a.keys.Edit):
		a.openEditor()
	case key.Matches(m, a.keys.Filter):
		a.mode = modeFilter
		a.focusFilter(a.filterCol)
	case key.Matches(m, a.keys.Add):
		a.status = "adding..."
		return a, a.addCmd()
	case key.Matches(m, a.keys.Delete):
		if row, ok := a.current(); ok {
			a.status = "deleting..."
			return a, a.deleteCmd(row.ID)
		}
	case key.Matches(m, a.keys.Reload):
		a.status = "refreshing..."
		return a, a.reloadCmd()
	case key.Matches(m, a.keys.Clear):
		a.resetFilters()
		a.status = "clearing filters..."
		return a, a.clearCmd()
	case key.Matches(m, a.keys.Export):
		return a, a.exportCmd()
	}
	return a, nil
}

func (a *App) moveCol(delta int) {
	n := len(ledger.EditFields)
	a.col = (a.col + delta + n) % n
}

func (a *App) field() ledger.Field { return ledger.EditFields[a.col] }

func (a *App) enumColumn() bool {
	switch a.field() {
	case ledger.FieldVehicle, ledger.FieldStatus, ledger.FieldType:
		return true
	}
	return false
}

func (a *App) current() (ledger.Row, bool) {
	if a.cursor < 0 || a.cursor >= len(a.rows) {
		return ledger.Row{}, false
	}
	return a.rows[a.cursor], true
}

// begin applies an edit locally and returns the command that writes it.
func (a *App) begin(id int64, field ledger.Field, raw string) tea.Cmd {
	w, err := a.ledger.BeginEdit(id, field, raw)
	if err != nil {
		a.status = "error: " + err.Error()
		return nil
	}
	a.snapshot()
	a.status = "saving..."
	return a.commitCmd(w)
}

func (a *App) cycleCell(delta int) tea.Cmd {
	row, ok := a.current()
	if !ok {
		return nil
	}
	var raw string
	switch a.field() {
	case ledger.FieldVehicle:
		if len(a.ref.Vehicles) == 0 {
			a.status = "no vehicles loaded"
			return nil
		}
		i := -1
		for j, v := range a.ref.Vehicles {
			if row.Vehicle != nil && v.ID == *row.Vehicle {
				i = j
			}
		}
		i = wrap(i+delta, len(a.ref.Vehicles))
		raw = strconv.FormatInt(a.ref.Vehicles[i].ID, 10)
	case ledger.FieldStatus:
		i := -1
		for j, s := range a.ref.Statuses {
			if row.Status != nil && s == *row.Status {
				i = j
			}
		}
		raw = string(a.ref.Statuses[wrap(i+delta, len(a.ref.Statuses))])
	case ledger.FieldType:
		i := 0
		for j, t := range a.ref.Types {
			if t == row.Type {
				i = j
			}
		}
		raw = string(a.ref.Types[wrap(i+delta, len(a.ref.Types))])
	}
	return a.begin(row.ID, a.field(), raw)
}

func wrap(i, n int) int {
	return ((i % n) + n) % n
}

func (a *App) openEditor() {
	row, ok := a.current()
	if !ok {
		a.status = "no rows; press n to add one"
		return
	}
	a.mode = modeEdit
	a.editingID = row.ID
	a.editField = a.field()
	a.editor.SetValue(a.rawValue(row, a.editField))
	a.editor.CursorEnd()
	a.editor.Focus()
}

func (a *App) rawValue(row ledger.Row, f ledger.Field) string {
	switch f {
	case ledger.FieldDate:
		return row.Date
	case ledger.FieldDescription:
		if row.Description != nil {
			return *row.Description
		}
	case ledger.FieldVehicle:
		if row.Vehicle != nil {
			return strconv.FormatInt(*row.Vehicle, 10)
		}
	case ledger.FieldStatus:
		if row.Status != nil {
			return string(*row.Status)
		}
	case ledger.FieldType:
		return string(row.Type)
	case ledger.FieldAmount:
		return row.Amount.String()
	}
	return ""
}

func (a *App) handleEditKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(m, a.keys.Cancel):
		a.mode = modeBrowse
		a.editor.Blur()
		return a, nil
	case key.Matches(m, a.keys.Edit):
		a.mode = modeBrowse
		a.editor.Blur()
		raw := a.editor.Value()
		if a.editField == ledger.FieldVehicle {
			raw = a.resolveVehicle(raw)
		}
		return a, a.begin(a.editingID, a.editField, raw)
	}
	var cmd tea.Cmd
	a.editor, cmd = a.editor.Update(m)
	return a, cmd
}

// resolveVehicle lets the vehicle cell take a name as well as an id.
func (a *App) resolveVehicle(raw string) string {
	v := strings.TrimSpace(raw)
	if v == "" || (v[0] >= '0' && v[0] <= '9') {
		return raw
	}
	if opt, ok := a.ref.ClosestVehicle(v); ok {
		return strconv.FormatInt(opt.ID, 10)
	}
	return raw
}

func (a *App) filterField() ledger.Field { return ledger.FilterFields[a.filterCol] }

func (a *App) focusFilter(i int) {
	for j := range a.filters {
		a.filters[j].Blur()
	}
	a.filterCol = i
	a.filters[i].Focus()
}

// filterRaw is what the ledger gets for filter i.
func (a *App) filterRaw(i int) string {
	switch ledger.FilterFields[i] {
	case ledger.FieldVehicle:
		if a.vehicleAt < 0 || a.vehicleAt >= len(a.ref.Vehicles) {
			return ""
		}
		return strconv.FormatInt(a.ref.Vehicles[a.vehicleAt].ID, 10)
	case ledger.FieldType:
		if a.typeAt < 0 || a.typeAt >= len(a.ref.Types) {
			return ""
		}
		return string(a.ref.Types[a.typeAt])
	}
	return a.filters[i].Value()
}

// fire sends filter i if its value differs from the last one the ledger
// accepted.
func (a *App) fire(i int) tea.Cmd {
	raw := a.filterRaw(i)
	if raw == a.applied[i] {
		return nil
	}
	a.status = "filtering..."
	return a.filterCmd(i, raw)
}

// blur leaves the focused filter. Text filters that wait for Enter fire here too.
func (a *App) blur() tea.Cmd {
	switch a.filterField() {
	case ledger.FieldDescription, ledger.FieldAmount:
		return a.fire(a.filterCol)
	}
	return nil
}

func (a *App) handleFilterKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(m, a.keys.Cancel):
		cmd := a.blur()
		a.filters[a.filterCol].Blur()
		a.mode = modeBrowse
		return a, cmd
	case key.Matches(m, a.keys.TabNext), key.Matches(m, a.keys.TabPrev):
		cmd := a.blur()
		delta := 1
		if key.Matches(m, a.keys.TabPrev) {
			delta = -1
		}
		a.focusFilter(wrap(a.filterCol+delta, len(a.filters)))
		return a, cmd
	case key.Matches(m, a.keys.Edit):
		return a, a.fire(a.filterCol)
	}

	switch a.filterField() {
	case ledger.FieldVehicle, ledger.FieldType:
		return a, a.cycleFilter(m)
	}

	var cmd tea.Cmd
	a.filters[a.filterCol], cmd = a.filters[a.filterCol].Update(m)
	if a.filterField() == ledger.FieldDate {
		v := strings.TrimSpace(a.filters[a.filterCol].Value())
		if v == "" || completeDate.MatchString(v) {
			return a, tea.Batch(cmd, a.fire(a.filterCol))
		}
	}
	return a, cmd
}

// cycleFilter steps a dropdown filter through "any" and its options.
func (a *App) cycleFilter(m tea.KeyMsg) tea.Cmd {
	delta := 0
	switch {
	case key.Matches(m, a.keys.Left):
		delta = -1
	case key.Matches(m, a.keys.Right):
		delta = 1
	default:
		return nil
	}
	in := &a.filters[a.filterCol]
	switch a.filterField() {
	case ledger.FieldVehicle:
		a.vehicleAt = wrap(a.vehicleAt+1+delta, len(a.ref.Vehicles)+1) - 1
		in.SetValue("")
		if a.vehicleAt >= 0 {
			in.SetValue(a.ref.Vehicles[a.vehicleAt].Name)
		}
	case ledger.FieldType:
		a.typeAt = wrap(a.typeAt+1+delta, len(a.ref.Types)+1) - 1
		in.SetValue("")
		if a.typeAt >= 0 {
			in.SetValue(string(a.ref.Types[a.typeAt]))
		}
	}
	return a.fire(a.filterCol)
}

func (a *App) resetFilters() {
	for i := range a.filters {
		a.filters[i].SetValue("")
		a.applied[i] = ""
	}
	a.vehicleAt, a.typeAt = -1, -1
}

// messages
type statusMsg string

type errMsg struct{ error }

type referenceMsg struct{}

// filterMsg reports the outcome of applying filter index.
type filterMsg struct {
	index int
	raw   string
	err   error
}
