package tui

import (
	"time"

	"github.com/LISSConsulting/LISSTech.TabKit/internal/tabs"
)

// flushMsg applies the controller's pending transition on the turn after
// the request.
type flushMsg struct{}

// pageDecidedMsg carries the owner's answer to a controlled-mode request.
type pageDecidedMsg struct{ page tabs.Page }

// tickMsg is sent every second for the clock.
type tickMsg time.Time

// animFrameMsg advances the tab bar underline animation.
type animFrameMsg struct{}

// reloadedMsg carries a rebuilt tab list and content source.
type reloadedMsg struct {
	tabs    []tabs.Tab
	content tabs.Source[string]
	err     error
}

// copiedMsg reports the result of copying the pane to the clipboard.
type copiedMsg struct {
	title string
	err   error
}
