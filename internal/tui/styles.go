package tui

import "github.com/charmbracelet/lipgloss"

var (
	accent = lipgloss.Color("#7D56F4")
	subtle = lipgloss.Color("#6C7086")
	danger = lipgloss.Color("#F38BA8")
	ok     = lipgloss.Color("#A6E3A1")

	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(accent)
	stepStyle     = lipgloss.NewStyle().Foreground(subtle).Italic(true)
	helpStyle     = lipgloss.NewStyle().Foreground(subtle)
	errorStyle    = lipgloss.NewStyle().Foreground(danger)
	successStyle  = lipgloss.NewStyle().Bold(true).Foreground(ok)
	cursorStyle   = lipgloss.NewStyle().Reverse(true)
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(ok)
	disabledStyle = lipgloss.NewStyle().Foreground(subtle).Faint(true)
	labelStyle    = lipgloss.NewStyle().Width(10)

	frameStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(0, 1)
)
