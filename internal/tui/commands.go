package tui

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/fleetledger/internal/ledger"
)

func (a *App) loadCmd() tea.Cmd {
	return func() tea.Msg {
		if err := a.ledger.Load(a.ctx); err != nil {
			return errMsg{err}
		}
		return statusMsg(fmt.Sprintf("loaded %d rows", len(a.ledger.Rows())))
	}
}

func (a *App) loadReferenceCmd() tea.Cmd {
	return func() tea.Msg {
		if err := a.ledger.LoadReference(a.ctx); err != nil {
			return errMsg{err}
		}
		return referenceMsg{}
	}
}

func (a *App) reloadCmd() tea.Cmd {
	return func() tea.Msg {
		if err := a.ledger.Reload(a.ctx); err != nil {
			return errMsg{err}
		}
		return statusMsg("refreshed")
	}
}

func (a *App) filterCmd(i int, raw string) tea.Cmd {
	field := ledger.FilterFields[i]
	return func() tea.Msg {
		return filterMsg{index: i, raw: raw, err: a.ledger.SetFilter(a.ctx, field, raw)}
	}
}

func (a *App) clearCmd() tea.Cmd {
	return func() tea.Msg {
		if err := a.ledger.ClearFilters(a.ctx); err != nil {
			return errMsg{err}
		}
		return statusMsg("filters cleared")
	}
}

func (a *App) commitCmd(w *ledger.Write) tea.Cmd {
	return func() tea.Msg {
		if err := w.Commit(a.ctx); err != nil {
			return errMsg{err}
		}
		return statusMsg("saved")
	}
}

func (a *App) addCmd() tea.Cmd {
	return func() tea.Msg {
		t, err := a.ledger.Add(a.ctx)
		if err != nil {
			return errMsg{err}
		}
		return statusMsg(fmt.Sprintf("added row %d", t.ID))
	}
}

func (a *App) deleteCmd(id int64) tea.Cmd {
	return func() tea.Msg {
		if err := a.ledger.Delete(a.ctx, id); err != nil {
			return errMsg{err}
		}
		return statusMsg(fmt.Sprintf("deleted row %d", id))
	}
}

func (a *App) exportCmd() tea.Cmd {
	path := a.cfg.Export.Path
	if path == "" {
		path = ledger.ExportFileName
	}
	rows := a.ledger.Transactions()
	layout := a.layout
	return func() tea.Msg {
		f, err := os.Create(path)
		if err != nil {
			return errMsg{fmt.Errorf("export: %w", err)}
		}
		if err := ledger.WriteCSV(f, rows, layout); err != nil {
			_ = f.Close()
			return errMsg{fmt.Errorf("export: %w", err)}
		}
		if err := f.Close(); err != nil {
			return errMsg{fmt.Errorf("export: %w", err)}
		}
		return statusMsg(fmt.Sprintf("exported %d rows to %s", len(rows), path))
	}
}
