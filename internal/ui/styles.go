package ui

import "github.com/charmbracelet/lipgloss"

// ------- Lip Gloss styles for the interactive console -------
var (
	TitleStyle   = lipgloss.NewStyle().Bold(true)
	SuccessStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	WarnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	AccentStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	MutedStyle   = lipgloss.NewStyle().Faint(true)
	ErrorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)

	SelectedStyle = lipgloss.NewStyle().Bold(true).Reverse(true)
	HelpStyle     = lipgloss.NewStyle().Faint(true)

	// Current page in the pagination strip.
	PageActiveStyle = lipgloss.NewStyle().Bold(true).Reverse(true).Padding(0, 1)
	PageStyle       = lipgloss.NewStyle().Padding(0, 1)

	HeaderStyle = lipgloss.NewStyle().Bold(true).Underline(true)
)

// Border draws the rounded frame used by panels and modals.
func Border() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("8")).
		Padding(0, 1)
}
