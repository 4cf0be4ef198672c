package tui

import "github.com/charmbracelet/lipgloss"

// Styles shared by the CLI output and the sync view
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("170"))

	metaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("246")) // Lighter gray for dark terminals

	barStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86"))

	spinnerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)

// Title renders a section heading
func Title(s string) string {
	return titleStyle.Render(s)
}

// Meta renders secondary text
func Meta(s string) string {
	return metaStyle.Render(s)
}

// Success renders a completion message
func Success(s string) string {
	return successStyle.Render(s)
}

// Warning renders a partial-failure message
func Warning(s string) string {
	return warnStyle.Render(s)
}

// Failure renders an error message
func Failure(s string) string {
	return errorStyle.Render(s)
}
