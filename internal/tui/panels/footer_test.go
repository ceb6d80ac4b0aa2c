package panels

import (
	"errors"
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/key"
)

func TestRenderFooter_Hints(t *testing.T) {
	hints := []key.Binding{
		key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "next tab")),
		key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		key.NewBinding(key.WithKeys("x")), // no help: skipped
	}
	rendered := RenderFooter(FooterProps{Focus: "tabs", Hints: hints}, 120)
	for _, want := range []string{"] next tab", "q quit", "focus: tabs"} {
		if !strings.Contains(rendered, want) {
			t.Errorf("RenderFooter() missing %q; got %q", want, rendered)
		}
	}
}

func TestRenderFooter_Status(t *testing.T) {
	tests := []struct {
		name    string
		props   FooterProps
		want    string
		notWant string
	}{
		{"status", FooterProps{Focus: "pane", Status: "copied"}, "✓ copied", "focus:"},
		{"error", FooterProps{Focus: "pane", Status: errors.New("boom").Error(), StatusErr: true}, "✗ boom", "focus:"},
		{"scroll", FooterProps{Focus: "pane", Scroll: 0.5}, "focus: pane   50%", "✓"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rendered := RenderFooter(tt.props, 120)
			if !strings.Contains(rendered, tt.want) {
				t.Errorf("RenderFooter() missing %q; got %q", tt.want, rendered)
			}
			if strings.Contains(rendered, tt.notWant) {
				t.Errorf("RenderFooter() should not contain %q; got %q", tt.notWant, rendered)
			}
		})
	}
}

func TestRenderFooter_TruncatesLongStatus(t *testing.T) {
	long := strings.Repeat("x", 200)
	rendered := RenderFooter(FooterProps{Status: long}, 60)
	if strings.Contains(rendered, long) {
		t.Error("long status should be truncated")
	}
	if !strings.Contains(rendered, "…") {
		t.Errorf("truncated status should end with ellipsis; got %q", rendered)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"short", 10, "short"},
		{"exactly10!", 10, "exactly10!"},
		{"much longer text", 8, "much lo…"},
	}
	for _, tt := range tests {
		if got := Truncate(tt.in, tt.width); got != tt.want {
			t.Errorf("Truncate(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}
