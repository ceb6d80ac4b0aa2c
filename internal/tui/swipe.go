package tui

// Direction is the axis a swipe is measured along.
type Direction int

const (
	Horizontal Direction = iota
	Vertical
)

// ParseDirection maps a config string to a Direction. Unknown values are
// horizontal.
func ParseDirection(s string) Direction {
	if s == "vertical" {
		return Vertical
	}
	return Horizontal
}

// SwipeTracker turns a mouse drag over the pane into a tab step. A drag
// longer than Distance times the pane extent along the swipe axis switches
// one tab: dragging left (or up) moves forward, right (or down) back.
type SwipeTracker struct {
	Direction Direction
	Distance  float64 // fraction of the pane extent, (0, 1]

	active bool
	startX int
	startY int
}

// NewSwipeTracker creates a tracker. A non-positive distance disables it.
func NewSwipeTracker(dir Direction, distance float64) SwipeTracker {
	return SwipeTracker{Direction: dir, Distance: distance}
}

// Enabled reports whether swipes are recognized at all.
func (s SwipeTracker) Enabled() bool {
	return s.Distance > 0
}

// Active reports whether a drag is in progress.
func (s SwipeTracker) Active() bool {
	return s.active
}

// Begin starts tracking a drag at (x, y).
func (s SwipeTracker) Begin(x, y int) SwipeTracker {
	if !s.Enabled() {
		return s
	}
	s.active = true
	s.startX, s.startY = x, y
	return s
}

// End finishes the drag at (x, y) over a pane of the given size and returns
// the tab step: -1, 0 or +1.
func (s SwipeTracker) End(x, y, width, height int) (SwipeTracker, int) {
	if !s.active {
		return s, 0
	}
	s.active = false

	delta, extent := s.startX-x, width
	if s.Direction == Vertical {
		delta, extent = s.startY-y, height
	}
	if extent <= 0 {
		return s, 0
	}
	threshold := s.Distance * float64(extent)
	switch {
	case float64(delta) >= threshold:
		return s, 1
	case float64(-delta) >= threshold:
		return s, -1
	default:
		return s, 0
	}
}

// Cancel drops a drag in progress.
func (s SwipeTracker) Cancel() SwipeTracker {
	s.active = false
	return s
}
