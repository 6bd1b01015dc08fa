package tui

import "github.com/charmbracelet/lipgloss"

// Catppuccin Mocha, the subset the grid uses.
const (
	colorRed      lipgloss.Color = "#f38ba8"
	colorYellow   lipgloss.Color = "#f9e2af"
	colorGreen    lipgloss.Color = "#a6e3a1"
	colorTeal     lipgloss.Color = "#94e2d5"
	colorLavender lipgloss.Color = "#b4befe"
	colorPink     lipgloss.Color = "#f5c2e7"
	colorOverlay1 lipgloss.Color = "#7f849c"
	colorSurface1 lipgloss.Color = "#45475a"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorPink)
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorLavender)
	cursorStyle  = lipgloss.NewStyle().Reverse(true)
	rowStyle     = lipgloss.NewStyle().Background(colorSurface1)
	pendingStyle = lipgloss.NewStyle().Foreground(colorYellow)
	failedStyle  = lipgloss.NewStyle().Foreground(colorRed)
	incomeStyle  = lipgloss.NewStyle().Foreground(colorGreen)
	expenseStyle = lipgloss.NewStyle().Foreground(colorRed)
	filterStyle  = lipgloss.NewStyle().Foreground(colorTeal)
	mutedStyle   = lipgloss.NewStyle().Foreground(colorOverlay1)
	errorStyle   = lipgloss.NewStyle().Foreground(colorRed).Bold(true)
)
