// Package styles provides colour themes and styling for the TUI.
package styles

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

// Theme defines the colour palette for the TUI.
type Theme struct {
	Accent     lipgloss.Color
	Highlight  lipgloss.Color
	Foreground lipgloss.Color
	Muted      lipgloss.Color
	Match      lipgloss.Color
	Error      lipgloss.Color
	Border     lipgloss.Color
	Bar        lipgloss.Color
}

// DefaultTheme returns the default colour theme.
func DefaultTheme() *Theme {
	return &Theme{
		Accent:     lipgloss.Color("#0F766E"),
		Highlight:  lipgloss.Color("#2DD4BF"),
		Foreground: lipgloss.Color("#E5E7EB"),
		Muted:      lipgloss.Color("#6B7280"),
		Match:      lipgloss.Color("#FBBF24"),
		Error:      lipgloss.Color("#F87171"),
		Border:     lipgloss.Color("#374151"),
		Bar:        lipgloss.Color("#111827"),
	}
}

// Styles contains pre-configured lipgloss styles.
type Styles struct {
	theme *Theme

	// Title renders the document heading.
	Title lipgloss.Style

	// Subtitle renders section headings in the detail pane.
	Subtitle lipgloss.Style

	// Normal is regular text.
	Normal lipgloss.Style

	// Muted is secondary text and zero counts.
	Muted lipgloss.Style

	// Count renders positive counts.
	Count lipgloss.Style

	// Error renders error messages.
	Error lipgloss.Style

	// Pane frames the detail pane.
	Pane lipgloss.Style

	// StatusBar is the bottom bar.
	StatusBar lipgloss.Style

	// Table styles the bubbles results table.
	Table table.Styles
}

// NewStyles creates styles from a theme.
func NewStyles(theme *Theme) *Styles {
	if theme == nil {
		theme = DefaultTheme()
	}

	tableStyles := table.DefaultStyles()
	tableStyles.Header = tableStyles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(theme.Border).
		BorderBottom(true).
		Bold(true).
		Foreground(theme.Highlight)
	tableStyles.Selected = tableStyles.Selected.
		Foreground(theme.Foreground).
		Background(theme.Accent).
		Bold(true)

	return &Styles{
		theme: theme,

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Highlight),

		Subtitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Foreground),

		Normal: lipgloss.NewStyle().
			Foreground(theme.Foreground),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Count: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Match),

		Error: lipgloss.NewStyle().
			Foreground(theme.Error),

		Pane: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 1),

		StatusBar: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Background(theme.Bar).
			Padding(0, 1),

		Table: tableStyles,
	}
}

// DefaultStyles returns styles with the default theme.
func DefaultStyles() *Styles {
	return NewStyles(DefaultTheme())
}

// Theme returns the theme used by these styles.
func (s *Styles) Theme() *Theme {
	return s.theme
}
