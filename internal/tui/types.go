package tui

import "github.com/charmbracelet/lipgloss"

type focus int

const (
	focusPage focus = iota
	focusForm
)

const (
	fieldName = iota
	fieldEmail
	fieldMessage
	fieldCount
)

const (
	minViewportWidth = 40
	// chromeHeight covers the nav bar, status line and help line.
	chromeHeight = 4
)

var (
	accentColor = lipgloss.Color("#0f766e")
	mutedColor  = lipgloss.Color("245")
	errorColor  = lipgloss.Color("#dc2626")

	brandStyle      = lipgloss.NewStyle().Bold(true)
	navLinkStyle    = lipgloss.NewStyle().Foreground(mutedColor)
	navActiveStyle  = lipgloss.NewStyle().Bold(true).Underline(true).Foreground(accentColor)
	headingStyle    = lipgloss.NewStyle().Bold(true).Foreground(accentColor).MarginTop(1)
	subheadingStyle = lipgloss.NewStyle().Bold(true)
	taglineStyle    = lipgloss.NewStyle().Foreground(accentColor)
	helperStyle     = lipgloss.NewStyle().Foreground(mutedColor)
	selectedStyle   = lipgloss.NewStyle().Foreground(accentColor).Bold(true)
	errorStyle      = lipgloss.NewStyle().Foreground(errorColor)
	successStyle    = lipgloss.NewStyle().Foreground(accentColor).Bold(true)
	menuStyle       = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(accentColor).Padding(0, 2)
)
