package tui

import "github.com/charmbracelet/lipgloss"

const (
	colorInk     = "#111827"
	colorText    = "#334155"
	colorDim     = "#6b7280"
	colorBorder  = "#d1d5db"
	colorStroke  = "#9ca3af"
	colorHover   = "#475569"
	colorPanel   = "#ffffff"
	colorWarning = "#b45309"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#0f766e"))
	statStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color(colorDim))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(colorText))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color(colorWarning))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color(colorDim)).Faint(true)
)
