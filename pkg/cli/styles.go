package cli

import "github.com/charmbracelet/lipgloss"

// Theme defines the color scheme for terminal output.
type Theme struct {
	Primary lipgloss.Color // Main accent color
	Dim     lipgloss.Color // Dimmed/metadata text color
}

// DefaultTheme is the default bright green theme.
var DefaultTheme = Theme{
	Primary: lipgloss.Color("#00ff9f"),
	Dim:     lipgloss.Color("#6e7681"),
}

// Styles holds all styles derived from a theme.
type Styles struct {
	Title   lipgloss.Style
	Speaker lipgloss.Style
	Kind    lipgloss.Style
	Meta    lipgloss.Style
}

// NewStyles creates styles from a theme.
func NewStyles(t Theme) Styles {
	return Styles{
		Title:   lipgloss.NewStyle().Bold(true).Foreground(t.Primary),
		Speaker: lipgloss.NewStyle().Bold(true).Foreground(t.Primary),
		Kind:    lipgloss.NewStyle().Foreground(t.Dim),
		Meta:    lipgloss.NewStyle().Foreground(t.Dim),
	}
}
