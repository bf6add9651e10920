package main

import (
	"errors"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mgomes/brewin/brewin"
)

var (
	accentColor    = lipgloss.Color("#3B82F6")
	successColor   = lipgloss.Color("#10B981")
	errorColor     = lipgloss.Color("#EF4444")
	mutedColor     = lipgloss.Color("#6B7280")
	highlightColor = lipgloss.Color("#F59E0B")

	promptStyle = lipgloss.NewStyle().
			Foreground(accentColor).
			Bold(true)

	resultStyle = lipgloss.NewStyle().
			Foreground(successColor)

	errorStyle = lipgloss.NewStyle().
			Foreground(errorColor)

	errorKindStyle = lipgloss.NewStyle().
			Foreground(errorColor).
			Bold(true)

	passStyle = lipgloss.NewStyle().
			Foreground(successColor).
			Bold(true)

	mutedStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	headerStyle = lipgloss.NewStyle().
			Foreground(accentColor).
			Bold(true).
			Padding(0, 1)

	helpKeyStyle = lipgloss.NewStyle().
			Foreground(highlightColor)

	helpDescStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	borderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accentColor).
			Padding(0, 1)
)

// renderError highlights the kind label of an interpreter error. Other
// errors are printed unchanged.
func renderError(err error) string {
	var brewinErr *brewin.Error
	if !errors.As(err, &brewinErr) {
		return err.Error()
	}
	text := err.Error()
	label := brewinErr.Kind.String()
	if rest, ok := strings.CutPrefix(text, label); ok {
		return errorKindStyle.Render(label) + rest
	}
	return text
}
