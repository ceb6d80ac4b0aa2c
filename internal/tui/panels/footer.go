package panels

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

var (
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	keyStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FAFAFA")).Bold(true)
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6BCB77"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true)
)

// FooterProps holds all data needed to render the footer bar.
type FooterProps struct {
	Focus     string // "tabs" or "pane"
	Hints     []key.Binding
	Status    string
	StatusErr bool
	Scroll    float64 // pane scroll position, 0 to 1
}

// RenderFooter renders the context-sensitive footer bar.
// Left side: status message or focus and scroll position. Right side:
// keybinding hints for the current focus.
func RenderFooter(props FooterProps, width int) string {
	var left string
	status := Truncate(props.Status, max(width/2, 10))
	switch {
	case status != "" && props.StatusErr:
		left = errorStyle.Render("✗ " + status)
	case status != "":
		left = statusStyle.Render("✓ " + status)
	default:
		left = fmt.Sprintf("focus: %s  %3.0f%%", props.Focus, props.Scroll*100)
	}

	right := renderHints(props.Hints)

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 2 {
		gap = 2
	}

	return footerStyle.Width(width).MaxWidth(width).Render(left + strings.Repeat(" ", gap) + right)
}

// renderHints formats bindings as "key desc" pairs.
func renderHints(bindings []key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		if h.Key == "" && h.Desc == "" {
			continue
		}
		parts = append(parts, keyStyle.Render(h.Key)+" "+h.Desc)
	}
	return strings.Join(parts, "  ")
}

// Truncate shortens s to width display columns with an ellipsis.
func Truncate(s string, width int) string {
	return runewidth.Truncate(s, width, "…")
}
