package tui

import "github.com/LISSConsulting/LISSTech.TabKit/internal/tabs"

// Minimum terminal size the viewer renders at.
const (
	MinWidth  = 40
	MinHeight = 10
)

// tabBarRows is the height of a horizontal tab bar: labels + underline.
const tabBarRows = 2

// Rect represents a rectangular region of the terminal.
type Rect struct {
	X, Y, Width, Height int
}

// Contains reports whether the point (x, y) lies inside the rect.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Layout holds the computed geometry for a given terminal size.
type Layout struct {
	Header, Footer Rect
	TabBar         Rect // zero when the tab bar is hidden
	Pane           Rect
	Vertical       bool // tab bar is a side column
	TooSmall       bool // true when the terminal is below MinWidth×MinHeight
}

// Calculate computes the layout for a terminal of the given dimensions.
//
// Algorithm:
//   - Header: full width, 1 row at top
//   - Footer: full width, 1 row at bottom
//   - Top/bottom tab bar: full width, 2 rows above/below the pane
//   - Left/right tab bar: 25% of width clamped to [14, 30], full body height
//   - Pane: everything else
func Calculate(width, height int, pos tabs.Position, hidden bool) Layout {
	if width < MinWidth || height < MinHeight {
		return Layout{TooSmall: true}
	}

	bodyY := 1
	bodyH := height - 2
	l := Layout{
		Header: Rect{X: 0, Y: 0, Width: width, Height: 1},
		Footer: Rect{X: 0, Y: height - 1, Width: width, Height: 1},
		Pane:   Rect{X: 0, Y: bodyY, Width: width, Height: bodyH},
	}
	if hidden {
		return l
	}

	switch pos {
	case tabs.PositionBottom:
		l.Pane.Height = bodyH - tabBarRows
		l.TabBar = Rect{X: 0, Y: bodyY + l.Pane.Height, Width: width, Height: tabBarRows}
	case tabs.PositionLeft, tabs.PositionRight:
		sideW := min(max(width*25/100, 14), 30)
		l.Vertical = true
		l.Pane.Width = width - sideW
		if pos == tabs.PositionLeft {
			l.TabBar = Rect{X: 0, Y: bodyY, Width: sideW, Height: bodyH}
			l.Pane.X = sideW
		} else {
			l.TabBar = Rect{X: l.Pane.Width, Y: bodyY, Width: sideW, Height: bodyH}
		}
	default:
		l.TabBar = Rect{X: 0, Y: bodyY, Width: width, Height: tabBarRows}
		l.Pane.Y = bodyY + tabBarRows
		l.Pane.Height = bodyH - tabBarRows
	}
	return l
}

// innerDims returns the content dimensions for a panel rect accounting for
// the 1-character border on each side (2 total per dimension).
func innerDims(r Rect) (w, h int) {
	return max(r.Width-2, 1), max(r.Height-2, 1)
}
