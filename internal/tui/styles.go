// Package tui provides a bubbletea + lipgloss terminal viewer that hosts a
// tabs.Controller.
package tui

import "github.com/charmbracelet/lipgloss"

// defaultAccentColor is the default accent color (indigo).
const defaultAccentColor = "#7D56F4"

var (
	colorWhite = lipgloss.Color("#FAFAFA")
	colorGray  = lipgloss.Color("#888888")
)

var placeholderStyle = lipgloss.NewStyle().
	Foreground(colorGray).
	Italic(true)
