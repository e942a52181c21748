// Package tui provides the interactive menu, breadcrumb trail and in-terminal
// file and directory pickers.
package tui

import "github.com/charmbracelet/lipgloss"

// Palette holds the menu color scheme.
type Palette struct {
	FG     string
	Muted  string
	Accent string
	Error  string
}

// DefaultPalette returns the blue-on-dark theme.
func DefaultPalette() Palette {
	return Palette{
		FG:     "#e0e0e0",
		Muted:  "#6b7280",
		Accent: "#5fafff",
		Error:  "#ff6b6b",
	}
}

// Styles holds the lipgloss styles derived from a palette.
type Styles struct {
	Breadcrumb lipgloss.Style
	Separator  lipgloss.Style
	Current    lipgloss.Style
	Title      lipgloss.Style
	Help       lipgloss.Style
	Selected   lipgloss.Style
	Error      lipgloss.Style
}

// NewStyles creates styles from a palette.
func NewStyles(p Palette) Styles {
	return Styles{
		Breadcrumb: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.Muted)),

		Separator: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.Muted)),

		Current: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.Accent)).
			Bold(true),

		Title: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.FG)).
			Bold(true).
			Padding(0, 1),

		Help: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.Muted)).
			Padding(0, 1),

		Selected: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.Accent)),

		Error: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.Error)).
			Bold(true),
	}
}

// DefaultStyles are used when a caller does not supply its own.
var DefaultStyles = NewStyles(DefaultPalette())
