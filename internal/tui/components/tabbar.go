// Package components provides reusable TUI components for the TabKit viewer.
package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/LISSConsulting/LISSTech.TabKit/internal/tabs"
)

const (
	defaultActiveColor   = "#7D56F4"
	defaultInactiveColor = "#888888"

	separator   = " │ "
	moreLeft    = "‹ "
	moreRight   = " ›"
	ellipsis    = "…"
	minLabelW   = 3
	indicatorCh = "━"
	activeBar   = "▌ "
	inactiveBar = "  "
)

// Segment is the on-screen span of one visible tab. For a horizontal bar X
// and Width are columns on the label row; for a vertical bar Y is the row.
type Segment struct {
	Index int
	Label string
	X     int
	Y     int
	Width int
}

// TabBar renders tabs.TabBarProps as a row (or column) of labels. It is
// stateless: every change of the active tab goes through props.GoToTab.
type TabBar struct {
	props     tabs.TabBarProps
	width     int
	height    int
	vertical  bool
	indicator int // column of the active underline; -1 = under the active tab
}

// NewTabBar creates a horizontal TabBar for the given props and width.
func NewTabBar(props tabs.TabBarProps, width int) TabBar {
	return TabBar{props: props, width: width, height: 2, indicator: -1}
}

// SetVertical switches between a label row and a label column. height is
// the number of rows available to a vertical bar.
func (t TabBar) SetVertical(vertical bool, height int) TabBar {
	t.vertical = vertical
	t.height = height
	return t
}

// WithIndicator pins the underline to column x instead of the active tab.
func (t TabBar) WithIndicator(x int) TabBar {
	t.indicator = x
	return t
}

// Props returns the props the bar renders.
func (t TabBar) Props() tabs.TabBarProps {
	return t.props
}

// Label returns the display label for the tab at index.
func Label(tab tabs.Tab, index int) string {
	switch {
	case tab.Title != "":
		return tab.Title
	case tab.Key != "":
		return tab.Key
	default:
		return fmt.Sprintf("Tab %d", index+1)
	}
}

// pageSize returns the number of tabs shown at once.
func (t TabBar) pageSize() int {
	n := t.props.PageSize
	if n <= 0 {
		n = tabs.DefaultPageSize
	}
	if t.vertical {
		// Reserve rows for the paging hints.
		if rows := t.height - 2; rows < n {
			n = max(rows, 1)
		}
	}
	return n
}

// Page returns the [start, end) range of tab indices visible on the page
// holding the active tab.
func (t TabBar) Page() (start, end int) {
	n := len(t.props.Tabs)
	if n == 0 {
		return 0, 0
	}
	size := t.pageSize()
	active := min(max(t.props.ActiveTab, 0), n-1)
	start = active / size * size
	return start, min(start+size, n)
}

// Segments returns the layout of the visible tabs.
func (t TabBar) Segments() []Segment {
	start, end := t.Page()
	if start == end {
		return nil
	}
	if t.vertical {
		return t.verticalSegments(start, end)
	}

	count := end - start
	avail := t.width - runewidth.StringWidth(separator)*(count-1)
	if start > 0 {
		avail -= runewidth.StringWidth(moreLeft)
	}
	if end < len(t.props.Tabs) {
		avail -= runewidth.StringWidth(moreRight)
	}
	maxW := max(avail/count, minLabelW)

	x := 0
	if start > 0 {
		x = runewidth.StringWidth(moreLeft)
	}
	segs := make([]Segment, 0, count)
	for i := start; i < end; i++ {
		label := runewidth.Truncate(Label(t.props.Tabs[i], i), maxW, ellipsis)
		w := runewidth.StringWidth(label)
		segs = append(segs, Segment{Index: i, Label: label, X: x, Width: w})
		x += w + runewidth.StringWidth(separator)
	}
	return segs
}

func (t TabBar) verticalSegments(start, end int) []Segment {
	maxW := max(t.width-runewidth.StringWidth(activeBar), minLabelW)
	y := 0
	if start > 0 {
		y = 1 // "more above" row
	}
	segs := make([]Segment, 0, end-start)
	for i := start; i < end; i++ {
		label := runewidth.Truncate(Label(t.props.Tabs[i], i), maxW, ellipsis)
		segs = append(segs, Segment{Index: i, Label: label, Y: y, Width: t.width})
		y++
	}
	return segs
}

// ActiveSegment returns the segment of the active tab.
func (t TabBar) ActiveSegment() (Segment, bool) {
	for _, s := range t.Segments() {
		if s.Index == t.props.ActiveTab {
			return s, true
		}
	}
	return Segment{}, false
}

// HitTest maps a position relative to the bar's top-left corner to a tab
// index.
func (t TabBar) HitTest(x, y int) (int, bool) {
	for _, s := range t.Segments() {
		if t.vertical {
			if y == s.Y && x >= 0 && x < t.width {
				return s.Index, true
			}
			continue
		}
		if y >= 0 && y < 2 && x >= s.X && x < s.X+s.Width {
			return s.Index, true
		}
	}
	return 0, false
}

// Click handles a press at a position relative to the bar. A hit notifies
// OnTabClick and then requests the tab through GoToTab. hit is false when
// the position is not on a tab.
func (t TabBar) Click(x, y int) (index int, accepted, hit bool) {
	index, hit = t.HitTest(x, y)
	if !hit {
		return 0, false, false
	}
	if t.props.OnTabClick != nil {
		t.props.OnTabClick(t.props.Tabs[index], index)
	}
	if t.props.GoToTab != nil {
		accepted = t.props.GoToTab(index)
	}
	return index, accepted, true
}

func (t TabBar) styles() (active, inactive, underline lipgloss.Style) {
	st := t.props.Style
	activeColor := orDefault(st.ActiveColor, defaultActiveColor)
	active = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(activeColor))
	inactive = lipgloss.NewStyle().Foreground(lipgloss.Color(orDefault(st.InactiveColor, defaultInactiveColor)))
	underline = lipgloss.NewStyle().Foreground(lipgloss.Color(orDefault(st.UnderlineColor, activeColor)))
	if st.BackgroundColor != "" {
		bg := lipgloss.Color(st.BackgroundColor)
		active = active.Background(bg)
		inactive = inactive.Background(bg)
		underline = underline.Background(bg)
	}
	return active, inactive, underline
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

// View renders the tab bar. A horizontal bar is two rows: labels and the
// active-tab underline.
func (t TabBar) View() string {
	segs := t.Segments()
	if len(segs) == 0 {
		return ""
	}
	if t.vertical {
		return t.verticalView(segs)
	}

	activeSt, inactiveSt, underlineSt := t.styles()
	start, end := t.Page()

	var row strings.Builder
	if start > 0 {
		row.WriteString(inactiveSt.Render(moreLeft))
	}
	for i, s := range segs {
		if i > 0 {
			row.WriteString(inactiveSt.Render(separator))
		}
		if s.Index == t.props.ActiveTab {
			row.WriteString(activeSt.Render(s.Label))
		} else {
			row.WriteString(inactiveSt.Render(s.Label))
		}
	}
	if end < len(t.props.Tabs) {
		row.WriteString(inactiveSt.Render(moreRight))
	}

	var under string
	if active, ok := t.ActiveSegment(); ok {
		x := active.X
		if t.indicator >= 0 {
			x = t.indicator
		}
		x = min(max(x, 0), max(t.width-active.Width, 0))
		under = strings.Repeat(" ", x) + underlineSt.Render(strings.Repeat(indicatorCh, active.Width))
	}
	return row.String() + "\n" + under
}

func (t TabBar) verticalView(segs []Segment) string {
	activeSt, inactiveSt, underlineSt := t.styles()
	start, end := t.Page()

	var rows []string
	if start > 0 {
		rows = append(rows, inactiveSt.Render("↑ "+fmt.Sprintf("%d more", start)))
	}
	for _, s := range segs {
		if s.Index == t.props.ActiveTab {
			rows = append(rows, underlineSt.Render(activeBar)+activeSt.Render(s.Label))
		} else {
			rows = append(rows, inactiveBar+inactiveSt.Render(s.Label))
		}
	}
	if rest := len(t.props.Tabs) - end; rest > 0 {
		rows = append(rows, inactiveSt.Render("↓ "+fmt.Sprintf("%d more", rest)))
	}
	return strings.Join(rows, "\n")
}
