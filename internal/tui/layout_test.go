package tui

import (
	"testing"

	"github.com/LISSConsulting/LISSTech.TabKit/internal/tabs"
)

func TestCalculate(t *testing.T) {
	tests := []struct {
		name     string
		width    int
		height   int
		pos      tabs.Position
		hidden   bool
		vertical bool
		bar      Rect
		pane     Rect
	}{
		{
			name:  "80x24 top",
			width: 80, height: 24,
			pos:  tabs.PositionTop,
			bar:  Rect{X: 0, Y: 1, Width: 80, Height: 2},
			pane: Rect{X: 0, Y: 3, Width: 80, Height: 20},
		},
		{
			name:  "80x24 bottom",
			width: 80, height: 24,
			pos:  tabs.PositionBottom,
			bar:  Rect{X: 0, Y: 21, Width: 80, Height: 2},
			pane: Rect{X: 0, Y: 1, Width: 80, Height: 20},
		},
		{
			name:  "80x24 left clamps side to 20",
			width: 80, height: 24,
			pos:      tabs.PositionLeft,
			vertical: true,
			bar:      Rect{X: 0, Y: 1, Width: 20, Height: 22},
			pane:     Rect{X: 20, Y: 1, Width: 60, Height: 22},
		},
		{
			name:  "200x40 right clamps side to 30",
			width: 200, height: 40,
			pos:      tabs.PositionRight,
			vertical: true,
			bar:      Rect{X: 170, Y: 1, Width: 30, Height: 38},
			pane:     Rect{X: 0, Y: 1, Width: 170, Height: 38},
		},
		{
			name:  "40x10 left uses minimum side width",
			width: 40, height: 10,
			pos:      tabs.PositionLeft,
			vertical: true,
			bar:      Rect{X: 0, Y: 1, Width: 14, Height: 8},
			pane:     Rect{X: 14, Y: 1, Width: 26, Height: 8},
		},
		{
			name:  "hidden bar gives pane the body",
			width: 80, height: 24,
			pos:    tabs.PositionTop,
			hidden: true,
			bar:    Rect{},
			pane:   Rect{X: 0, Y: 1, Width: 80, Height: 22},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := Calculate(tt.width, tt.height, tt.pos, tt.hidden)
			if l.TooSmall {
				t.Fatal("TooSmall = true")
			}
			if l.Vertical != tt.vertical {
				t.Errorf("Vertical = %v, want %v", l.Vertical, tt.vertical)
			}
			if l.TabBar != tt.bar {
				t.Errorf("TabBar = %+v, want %+v", l.TabBar, tt.bar)
			}
			if l.Pane != tt.pane {
				t.Errorf("Pane = %+v, want %+v", l.Pane, tt.pane)
			}
			if l.Header != (Rect{X: 0, Y: 0, Width: tt.width, Height: 1}) {
				t.Errorf("Header = %+v", l.Header)
			}
			if l.Footer != (Rect{X: 0, Y: tt.height - 1, Width: tt.width, Height: 1}) {
				t.Errorf("Footer = %+v", l.Footer)
			}
		})
	}
}

func TestCalculate_TooSmall(t *testing.T) {
	tests := []struct {
		width, height int
		want          bool
	}{
		{39, 24, true},
		{80, 9, true},
		{40, 10, false},
	}
	for _, tt := range tests {
		if got := Calculate(tt.width, tt.height, tabs.PositionTop, false).TooSmall; got != tt.want {
			t.Errorf("Calculate(%d, %d).TooSmall = %v, want %v", tt.width, tt.height, got, tt.want)
		}
	}
}

func TestRectContains(t *testing.T) {
	r := Rect{X: 2, Y: 3, Width: 4, Height: 2}
	tests := []struct {
		x, y int
		want bool
	}{
		{2, 3, true},
		{5, 4, true},
		{6, 4, false},
		{5, 5, false},
		{1, 3, false},
	}
	for _, tt := range tests {
		if got := r.Contains(tt.x, tt.y); got != tt.want {
			t.Errorf("Contains(%d, %d) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestInnerDims(t *testing.T) {
	if w, h := innerDims(Rect{Width: 80, Height: 20}); w != 78 || h != 18 {
		t.Errorf("innerDims = %dx%d, want 78x18", w, h)
	}
	if w, h := innerDims(Rect{Width: 1, Height: 0}); w != 1 || h != 1 {
		t.Errorf("innerDims of tiny rect = %dx%d, want 1x1", w, h)
	}
}
