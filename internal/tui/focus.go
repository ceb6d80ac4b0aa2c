package tui

// FocusTarget identifies which region currently holds keyboard focus.
type FocusTarget int

const (
	FocusTabBar FocusTarget = iota // arrow keys move between tabs
	FocusPane                      // arrow keys scroll the pane
)

const focusTargets = 2

// Next returns the next focus target in forward tab order.
func (f FocusTarget) Next() FocusTarget {
	return (f + 1) % focusTargets
}

// Prev returns the previous focus target in reverse tab order.
func (f FocusTarget) Prev() FocusTarget {
	return (f + focusTargets - 1) % focusTargets
}

// String returns the human-readable name of the focus target.
func (f FocusTarget) String() string {
	switch f {
	case FocusTabBar:
		return "tabs"
	case FocusPane:
		return "pane"
	default:
		return "unknown"
	}
}
