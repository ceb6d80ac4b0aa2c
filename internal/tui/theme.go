package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/LISSConsulting/LISSTech.TabKit/internal/tabs"
)

// Theme holds accent-color-derived styles for the viewer.
type Theme struct {
	accentStyle     lipgloss.Style // header background
	borderFocused   lipgloss.Style // focused pane border
	borderUnfocused lipgloss.Style // unfocused pane border
	accent          string
}

// NewTheme creates a Theme from a hex accent color string (e.g. "#7D56F4").
// If accentColor is empty, the default accent color is used.
func NewTheme(accentColor string) Theme {
	color := defaultAccentColor
	if accentColor != "" {
		color = accentColor
	}
	c := lipgloss.Color(color)
	return Theme{
		accentStyle: lipgloss.NewStyle().
			Background(c).
			Foreground(colorWhite).
			Bold(true),
		borderFocused: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(c),
		borderUnfocused: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorGray),
		accent: color,
	}
}

// AccentHeaderStyle returns the style for the header bar.
func (t Theme) AccentHeaderStyle() lipgloss.Style {
	return t.accentStyle
}

// PanelBorderStyle returns the border style for the pane based on whether
// it currently holds keyboard focus.
func (t Theme) PanelBorderStyle(focused bool) lipgloss.Style {
	if focused {
		return t.borderFocused
	}
	return t.borderUnfocused
}

// TabBarStyle fills unset tab bar colours from the accent colour.
func (t Theme) TabBarStyle(s tabs.Style) tabs.Style {
	if s.ActiveColor == "" {
		s.ActiveColor = t.accent
	}
	if s.UnderlineColor == "" {
		s.UnderlineColor = s.ActiveColor
	}
	return s
}
