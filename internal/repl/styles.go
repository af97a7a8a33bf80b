package repl

import "github.com/charmbracelet/lipgloss"

var (
	colorAccent = lipgloss.Color("#20B9B4")
	colorResult = lipgloss.Color("#2CD7C7")
	colorError  = lipgloss.Color("#E74C3C")
	colorMuted  = lipgloss.Color("#6C7A89")
)

// Styles is the palette used for terminal output.
type Styles struct {
	Title  lipgloss.Style
	Result lipgloss.Style
	Error  lipgloss.Style
	Muted  lipgloss.Style
	Bold   lipgloss.Style
}

// DefaultStyles returns the colored palette for terminal output.
func DefaultStyles() Styles {
	return Styles{
		Title:  lipgloss.NewStyle().Bold(true).Foreground(colorAccent),
		Result: lipgloss.NewStyle().Foreground(colorResult),
		Error:  lipgloss.NewStyle().Bold(true).Foreground(colorError),
		Muted:  lipgloss.NewStyle().Foreground(colorMuted),
		Bold:   lipgloss.NewStyle().Bold(true),
	}
}

// PlainStyles renders text unchanged.
func PlainStyles() Styles {
	s := lipgloss.NewStyle()
	return Styles{Title: s, Result: s, Error: s, Muted: s, Bold: s}
}
