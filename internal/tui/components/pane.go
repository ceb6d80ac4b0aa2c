package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// PaneView is a scrollable content pane that wraps bubbles/viewport.
// Content is soft-wrapped to the pane width.
type PaneView struct {
	vp      viewport.Model
	content string
	width   int
	height  int
}

// NewPaneView creates an empty PaneView with the given dimensions.
func NewPaneView(w, h int) PaneView {
	return PaneView{vp: viewport.New(w, h), width: w, height: h}
}

// SetContent replaces the pane content and scrolls to the top.
func (v PaneView) SetContent(content string) PaneView {
	v.content = content
	v.vp.SetContent(v.wrap(content))
	v.vp.GotoTop()
	return v
}

// Content returns the unwrapped content.
func (v PaneView) Content() string {
	return v.content
}

// SetSize resizes the pane and rewraps its content, keeping the scroll
// offset where possible.
func (v PaneView) SetSize(w, h int) PaneView {
	offset := v.vp.YOffset
	v.width = w
	v.height = h
	v.vp.Width = w
	v.vp.Height = h
	v.vp.SetContent(v.wrap(v.content))
	v.vp.SetYOffset(offset)
	return v
}

// YOffset returns the current scroll offset.
func (v PaneView) YOffset() int {
	return v.vp.YOffset
}

// SetYOffset scrolls to offset, clamped to the content.
func (v PaneView) SetYOffset(offset int) PaneView {
	v.vp.SetYOffset(offset)
	return v
}

// ScrollPercent returns how far the pane is scrolled, 0 to 1.
func (v PaneView) ScrollPercent() float64 {
	return v.vp.ScrollPercent()
}

// Update handles bubbletea messages (scroll keys, mouse wheel).
func (v PaneView) Update(msg tea.Msg) (PaneView, tea.Cmd) {
	var cmd tea.Cmd
	v.vp, cmd = v.vp.Update(msg)
	return v, cmd
}

// View renders the visible part of the pane.
func (v PaneView) View() string {
	return v.vp.View()
}

func (v PaneView) wrap(content string) string {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	if v.width <= 0 {
		return content
	}
	return lipgloss.NewStyle().Width(v.width).Render(content)
}
