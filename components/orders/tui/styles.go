package tui

import "github.com/charmbracelet/lipgloss"

// Styles groups the lipgloss styles used by the order browser.
type Styles struct {
	Title    lipgloss.Style
	Label    lipgloss.Style
	Value    lipgloss.Style
	Footer   lipgloss.Style
	Help     lipgloss.Style
	Error    lipgloss.Style
	Selected lipgloss.Style
	Header   lipgloss.Style
	Border   lipgloss.Color
}

// DefaultStyles mirrors the light theme of the web pages.
func DefaultStyles() Styles {
	return Styles{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#1976d2")).MarginBottom(1),
		Label:    lipgloss.NewStyle().Foreground(lipgloss.Color("#666666")),
		Value:    lipgloss.NewStyle().Bold(true),
		Footer:   lipgloss.NewStyle().Foreground(lipgloss.Color("#666666")).MarginTop(1),
		Help:     lipgloss.NewStyle().Foreground(lipgloss.Color("#9e9e9e")),
		Error:    lipgloss.NewStyle().Foreground(lipgloss.Color("#f44336")),
		Selected: lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")).Background(lipgloss.Color("#1976d2")),
		Header:   lipgloss.NewStyle().Bold(true).Padding(0, 1),
		Border:   lipgloss.Color("#e0e0e0"),
	}
}

// StatusStyle colors a status label with its display color.
func StatusStyle(color string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
}
