package tui

import "github.com/LISSConsulting/LISSTech.TabKit/internal/tabs"

// PageOwner drives the active tab while the controller is in controlled
// mode. The viewer forwards every tab request the controller declines and
// follows the page the owner answers with. Returning an absent Page keeps
// the current tab.
type PageOwner interface {
	RequestPage(tab tabs.Tab, index int) tabs.Page
}

// PageOwnerFunc adapts a function to PageOwner.
type PageOwnerFunc func(tab tabs.Tab, index int) tabs.Page

// RequestPage calls f.
func (f PageOwnerFunc) RequestPage(tab tabs.Tab, index int) tabs.Page {
	return f(tab, index)
}

// FollowOwner approves every request, addressing the tab by key when it has
// one so the selection survives reordering.
var FollowOwner PageOwner = PageOwnerFunc(func(tab tabs.Tab, index int) tabs.Page {
	if tab.Key != "" {
		return tabs.Key(tab.Key)
	}
	return tabs.Index(index)
})
