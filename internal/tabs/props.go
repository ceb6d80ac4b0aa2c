package tabs

import "strings"

// Position is where the tab bar sits relative to the content.
type Position int

const (
	PositionTop Position = iota
	PositionBottom
	PositionLeft
	PositionRight
)

// ParsePosition maps a config string to a Position. Unknown values are top.
func ParsePosition(s string) Position {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "bottom":
		return PositionBottom
	case "left":
		return PositionLeft
	case "right":
		return PositionRight
	default:
		return PositionTop
	}
}

func (p Position) String() string {
	switch p {
	case PositionBottom:
		return "bottom"
	case PositionLeft:
		return "left"
	case PositionRight:
		return "right"
	default:
		return "top"
	}
}

// Style carries tab bar colour hints. Empty fields mean "renderer default".
type Style struct {
	ActiveColor     string
	InactiveColor   string
	BackgroundColor string
	UnderlineColor  string
}

// TabBarProps is everything a tab bar renderer needs. GoToTab is the only
// mutating entry point.
type TabBarProps struct {
	InstanceID string
	Tabs       []Tab
	ActiveTab  int
	Animated   bool
	GoToTab    func(index int) bool
	OnTabClick func(tab Tab, index int)
	Position   Position
	PageSize   int
	Style      Style
}
