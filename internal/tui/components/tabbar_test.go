package components

import (
	"reflect"
	"strings"
	"testing"

	"github.com/LISSConsulting/LISSTech.TabKit/internal/tabs"
)

func makeProps(n, active, pageSize int) tabs.TabBarProps {
	list := make([]tabs.Tab, n)
	for i := range list {
		list[i] = tabs.Tab{Key: string(rune('a' + i)), Title: "Tab" + string(rune('A'+i))}
	}
	return tabs.TabBarProps{Tabs: list, ActiveTab: active, PageSize: pageSize}
}

func TestLabel(t *testing.T) {
	tests := []struct {
		tab   tabs.Tab
		index int
		want  string
	}{
		{tabs.Tab{Key: "k", Title: "Title"}, 0, "Title"},
		{tabs.Tab{Key: "k"}, 0, "k"},
		{tabs.Tab{}, 2, "Tab 3"},
	}
	for _, tt := range tests {
		if got := Label(tt.tab, tt.index); got != tt.want {
			t.Errorf("Label(%+v, %d) = %q, want %q", tt.tab, tt.index, got, tt.want)
		}
	}
}

func TestTabBar_Page(t *testing.T) {
	tests := []struct {
		name      string
		n, active int
		pageSize  int
		wantStart int
		wantEnd   int
	}{
		{"empty", 0, 0, 5, 0, 0},
		{"fits one page", 3, 2, 5, 0, 3},
		{"first page", 12, 4, 5, 0, 5},
		{"second page", 12, 5, 5, 5, 10},
		{"last partial page", 12, 11, 5, 10, 12},
		{"zero page size uses default", 12, 7, 0, 5, 10},
		{"active out of range clamps", 3, 9, 2, 2, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tb := NewTabBar(makeProps(tt.n, tt.active, tt.pageSize), 80)
			start, end := tb.Page()
			if start != tt.wantStart || end != tt.wantEnd {
				t.Errorf("Page() = [%d,%d), want [%d,%d)", start, end, tt.wantStart, tt.wantEnd)
			}
		})
	}
}

func TestTabBar_Segments(t *testing.T) {
	tb := NewTabBar(makeProps(3, 0, 5), 80)
	segs := tb.Segments()
	if len(segs) != 3 {
		t.Fatalf("expected 3 segments, got %d", len(segs))
	}
	// "TabA │ TabB │ TabC": each label is 4 wide, separators 3.
	wantX := []int{0, 7, 14}
	for i, s := range segs {
		if s.X != wantX[i] || s.Width != 4 {
			t.Errorf("segment %d: X=%d Width=%d, want X=%d Width=4", i, s.X, s.Width, wantX[i])
		}
	}
}

func TestTabBar_SegmentsOffsetByPagingHint(t *testing.T) {
	tb := NewTabBar(makeProps(4, 3, 2), 80)
	segs := tb.Segments()
	if len(segs) != 2 || segs[0].Index != 2 {
		t.Fatalf("segments = %+v", segs)
	}
	if segs[0].X != 2 {
		t.Errorf("first segment X = %d, want 2 (after \"‹ \")", segs[0].X)
	}
}

func TestTabBar_TruncatesLongLabels(t *testing.T) {
	props := tabs.TabBarProps{
		Tabs:     []tabs.Tab{{Title: "A very long tab title"}, {Title: "Another long title"}},
		PageSize: 5,
	}
	tb := NewTabBar(props, 20)
	for _, s := range tb.Segments() {
		if s.Width > 8 {
			t.Errorf("segment %d width %d exceeds share of 20 columns", s.Index, s.Width)
		}
		if !strings.HasSuffix(s.Label, "…") {
			t.Errorf("truncated label %q should end with ellipsis", s.Label)
		}
	}
}

func TestTabBar_TruncatesWideRunes(t *testing.T) {
	props := tabs.TabBarProps{Tabs: []tabs.Tab{{Title: "日本語のタイトル"}, {Title: "x"}}, PageSize: 5}
	tb := NewTabBar(props, 13)
	segs := tb.Segments()
	if segs[0].Width > 5 {
		t.Errorf("wide label width = %d, want <= 5", segs[0].Width)
	}
}

func TestTabBar_HitTest(t *testing.T) {
	tb := NewTabBar(makeProps(3, 0, 5), 80)
	tests := []struct {
		x, y    int
		want    int
		wantHit bool
	}{
		{0, 0, 0, true},
		{3, 1, 0, true}, // underline row
		{5, 0, 0, false},
		{7, 0, 1, true},
		{17, 0, 2, true},
		{18, 0, 0, false},
		{7, 2, 0, false},
	}
	for _, tt := range tests {
		got, hit := tb.HitTest(tt.x, tt.y)
		if hit != tt.wantHit || (hit && got != tt.want) {
			t.Errorf("HitTest(%d,%d) = %d/%v, want %d/%v", tt.x, tt.y, got, hit, tt.want, tt.wantHit)
		}
	}
}

func TestTabBar_Click(t *testing.T) {
	var calls []string
	props := makeProps(3, 0, 5)
	props.OnTabClick = func(tab tabs.Tab, index int) {
		calls = append(calls, "click:"+tab.Key)
	}
	props.GoToTab = func(index int) bool {
		calls = append(calls, "goto")
		return index != 2
	}
	tb := NewTabBar(props, 80)

	index, accepted, hit := tb.Click(8, 0)
	if !hit || index != 1 || !accepted {
		t.Errorf("Click on tab 1 = %d/%v/%v", index, accepted, hit)
	}
	if want := []string{"click:b", "goto"}; !reflect.DeepEqual(calls, want) {
		t.Errorf("calls = %v, want %v (OnTabClick before GoToTab)", calls, want)
	}

	if _, accepted, hit := tb.Click(15, 0); !hit || accepted {
		t.Errorf("rejected GoToTab should report hit but not accepted")
	}

	calls = nil
	if _, _, hit := tb.Click(60, 0); hit {
		t.Error("click past the last tab should miss")
	}
	if len(calls) != 0 {
		t.Errorf("miss should not call callbacks, got %v", calls)
	}
}

func TestTabBar_View(t *testing.T) {
	tb := NewTabBar(makeProps(3, 1, 5), 80)
	view := tb.View()
	for _, label := range []string{"TabA", "TabB", "TabC"} {
		if !strings.Contains(view, label) {
			t.Errorf("View() missing label %q: %q", label, view)
		}
	}
	rows := strings.Split(view, "\n")
	if len(rows) != 2 {
		t.Fatalf("horizontal bar should have 2 rows, got %d", len(rows))
	}
	if !strings.Contains(rows[1], "━━━━") {
		t.Errorf("underline row = %q", rows[1])
	}
}

func TestTabBar_ViewPagingHints(t *testing.T) {
	view := NewTabBar(makeProps(6, 3, 2), 80).View()
	if !strings.Contains(view, "‹") || !strings.Contains(view, "›") {
		t.Errorf("middle page should show both paging hints: %q", view)
	}
	if strings.Contains(view, "TabA") || !strings.Contains(view, "TabD") {
		t.Errorf("wrong page rendered: %q", view)
	}
}

func TestTabBar_Empty(t *testing.T) {
	tb := NewTabBar(tabs.TabBarProps{}, 80)
	if view := tb.View(); view != "" {
		t.Errorf("empty TabBar View() = %q, want empty string", view)
	}
	if _, hit := tb.HitTest(0, 0); hit {
		t.Error("empty TabBar should not hit")
	}
}

func TestTabBar_Vertical(t *testing.T) {
	tb := NewTabBar(makeProps(6, 4, 10), 20).SetVertical(true, 5)
	// 5 rows leave 3 for tabs: page holding tab 4 is [3,6).
	start, end := tb.Page()
	if start != 3 || end != 6 {
		t.Fatalf("Page() = [%d,%d), want [3,6)", start, end)
	}

	view := tb.View()
	rows := strings.Split(view, "\n")
	if len(rows) != 4 {
		t.Fatalf("expected hint + 3 tab rows, got %d: %q", len(rows), view)
	}
	if !strings.Contains(rows[0], "3 more") {
		t.Errorf("first row should be the paging hint, got %q", rows[0])
	}

	if idx, hit := tb.HitTest(5, 2); !hit || idx != 4 {
		t.Errorf("HitTest row 2 = %d/%v, want 4", idx, hit)
	}
	if _, hit := tb.HitTest(5, 0); hit {
		t.Error("paging hint row should not hit")
	}
}

func TestTabBar_WithIndicator(t *testing.T) {
	tb := NewTabBar(makeProps(3, 0, 5), 80).WithIndicator(7)
	rows := strings.Split(tb.View(), "\n")
	if !strings.HasPrefix(rows[1], strings.Repeat(" ", 7)) {
		t.Errorf("underline should start at column 7: %q", rows[1])
	}
}
