// Package panels renders the header and footer bars of the TabKit viewer.
package panels

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// HeaderProps holds all data needed to render the header bar.
type HeaderProps struct {
	ProjectName string
	WorkDir     string
	TabTitle    string
	TabIndex    int
	TabCount    int
	Controlled  bool // an external page identifier drives the active tab
	Pending     bool // a transition is queued for the next turn
	Mounted     int  // tabs eligible for mounting
	Cached      int  // panes actually built
	Elapsed     time.Duration
	Clock       time.Time
}

// AbbreviatePath returns a display-friendly path, replacing the home directory
// with "~" and converting backslashes to forward slashes.
func AbbreviatePath(path string) string {
	if path == "" {
		return ""
	}
	if home, err := os.UserHomeDir(); err == nil && strings.HasPrefix(path, home) {
		path = "~" + path[len(home):]
	}
	return strings.ReplaceAll(path, "\\", "/")
}

// FormatElapsed renders a duration as a compact string: "5s", "2m30s", "1h15m".
func FormatElapsed(d time.Duration) string {
	d = d.Round(time.Second)
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	if h > 0 {
		return fmt.Sprintf("%dh%dm", h, m)
	}
	if m > 0 {
		return fmt.Sprintf("%dm%ds", m, s)
	}
	return fmt.Sprintf("%ds", s)
}

// RenderHeader renders the header bar. accentStyle is applied to the full
// header bar width.
func RenderHeader(props HeaderProps, width int, accentStyle lipgloss.Style) string {
	name := "TabKit"
	if props.ProjectName != "" {
		name = props.ProjectName
	}

	parts := []string{"▤ " + name}
	if props.WorkDir != "" {
		parts = append(parts, "dir: "+AbbreviatePath(props.WorkDir))
	}

	if props.TabCount == 0 {
		parts = append(parts, "no tabs")
	} else {
		tab := props.TabTitle
		if tab == "" {
			tab = "—"
		}
		parts = append(parts, fmt.Sprintf("tab: %s (%d/%d)", tab, props.TabIndex+1, props.TabCount))
		parts = append(parts, fmt.Sprintf("mounted: %d (cached %d)", props.Mounted, props.Cached))
	}

	mode := "uncontrolled"
	if props.Controlled {
		mode = "controlled"
	}
	if props.Pending {
		mode += " ⟳"
	}
	parts = append(parts, mode)

	if props.Elapsed > 0 {
		parts = append(parts, fmt.Sprintf("elapsed: %s", FormatElapsed(props.Elapsed)))
	}
	if !props.Clock.IsZero() {
		parts = append(parts, props.Clock.Format("15:04"))
	}

	content := strings.Join(parts, "  │  ")
	return accentStyle.Width(width).MaxWidth(width).Render(content)
}
