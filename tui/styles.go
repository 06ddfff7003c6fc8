// Package tui provides the interactive terminal chat interface for pubfind.
package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Semantic colors shared by both themes.
var (
	colorDestructive = lipgloss.Color("#e53935")
	colorSuccess     = lipgloss.Color("#43a047")
	colorWarning     = lipgloss.Color("#FFC107")
)

// Theme holds the current color scheme.
type Theme struct {
	Primary lipgloss.Color
	Accent  lipgloss.Color
	Muted   lipgloss.Color
	Border  lipgloss.Color
	IsDark  bool
}

// LightTheme returns the light mode theme.
func LightTheme() Theme {
	return Theme{
		Primary: lipgloss.Color("#101F38"),
		Accent:  lipgloss.Color("#00695c"),
		Muted:   lipgloss.Color("#6b7280"),
		Border:  lipgloss.Color("#d6dae0"),
		IsDark:  false,
	}
}

// DarkTheme returns the dark mode theme.
func DarkTheme() Theme {
	return Theme{
		Primary: lipgloss.Color("#80cbc4"),
		Accent:  lipgloss.Color("#ffcc80"),
		Muted:   lipgloss.Color("#64748b"),
		Border:  lipgloss.Color("#2a3850"),
		IsDark:  true,
	}
}

// DetectTheme picks a theme for the terminal's background.
func DetectTheme() Theme {
	if termenv.HasDarkBackground() {
		return DarkTheme()
	}
	return LightTheme()
}

// Styles bundles the lipgloss styles used across the interface.
type Styles struct {
	Theme       Theme
	UserLabel   lipgloss.Style
	BotLabel    lipgloss.Style
	ErrorText   lipgloss.Style
	NoticeText  lipgloss.Style
	Muted       lipgloss.Style
	RecordField lipgloss.Style
	RecordBox   lipgloss.Style
	OptionTitle lipgloss.Style
	InputBox    lipgloss.Style
	StatusOK    lipgloss.Style
}

// NewStyles builds the style set for a theme.
func NewStyles(theme Theme) Styles {
	return Styles{
		Theme:       theme,
		UserLabel:   lipgloss.NewStyle().Bold(true).Foreground(theme.Primary),
		BotLabel:    lipgloss.NewStyle().Bold(true).Foreground(theme.Accent),
		ErrorText:   lipgloss.NewStyle().Foreground(colorDestructive),
		NoticeText:  lipgloss.NewStyle().Foreground(colorWarning),
		Muted:       lipgloss.NewStyle().Foreground(theme.Muted),
		RecordField: lipgloss.NewStyle().PaddingLeft(2),
		RecordBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 1),
		OptionTitle: lipgloss.NewStyle().Bold(true).Foreground(theme.Accent),
		InputBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Accent).
			Padding(0, 1),
		StatusOK: lipgloss.NewStyle().Foreground(colorSuccess),
	}
}
