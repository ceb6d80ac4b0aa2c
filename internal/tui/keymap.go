package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the viewer's key bindings.
type KeyMap struct {
	Next      key.Binding
	Prev      key.Binding
	Left      key.Binding // tab bar focus only
	Right     key.Binding // tab bar focus only
	Jump      key.Binding // 1-9
	First     key.Binding
	Last      key.Binding
	Copy      key.Binding
	Reload    key.Binding
	FocusNext key.Binding
	FocusPrev key.Binding
	Quit      key.Binding
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Next:      key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "next tab")),
		Prev:      key.NewBinding(key.WithKeys("["), key.WithHelp("[", "prev tab")),
		Left:      key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev")),
		Right:     key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next")),
		Jump:      key.NewBinding(key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"), key.WithHelp("1-9", "jump")),
		First:     key.NewBinding(key.WithKeys("home"), key.WithHelp("home", "first")),
		Last:      key.NewBinding(key.WithKeys("end"), key.WithHelp("end", "last")),
		Copy:      key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy pane")),
		Reload:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		FocusNext: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "focus")),
		FocusPrev: key.NewBinding(key.WithKeys("shift+tab")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// Global returns the bindings handled before focus-specific dispatch.
func (k KeyMap) Global() []key.Binding {
	return []key.Binding{k.Next, k.Prev, k.Jump, k.Copy, k.Reload, k.FocusNext, k.FocusPrev, k.Quit}
}

// IsGlobalKey reports whether keyStr matches a global binding.
func (k KeyMap) IsGlobalKey(keyStr string) bool {
	for _, b := range k.Global() {
		for _, s := range b.Keys() {
			if s == keyStr {
				return true
			}
		}
	}
	return false
}

// Hints returns the bindings shown in the footer for the given focus.
func (k KeyMap) Hints(focus FocusTarget) []key.Binding {
	switch focus {
	case FocusTabBar:
		return []key.Binding{k.Left, k.Right, k.Jump, k.FocusNext, k.Quit}
	default:
		return []key.Binding{k.Prev, k.Next, k.Copy, k.Reload, k.FocusNext, k.Quit}
	}
}
