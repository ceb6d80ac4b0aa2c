package tabs

import (
	"io"
	"log"
	"slices"

	"github.com/google/uuid"
)

// DefaultPageSize is the number of tabs a tab bar shows at once.
const DefaultPageSize = 5

// Options configures a Controller. Setting Page puts the controller in
// controlled mode.
type Options struct {
	Tabs        []Tab
	InitialPage Page
	Page        Page

	// PrerenderSiblings is the number of tabs on each side of the active
	// tab kept mounted. 0 mounts only the active tab; Unbounded mounts all.
	PrerenderSiblings int
	DestroyInactive   bool
	Animated          bool

	TabBarPosition Position
	TabBarPageSize int
	Style          Style

	OnChange     func(tab Tab, index int)
	OnTabClick   func(tab Tab, index int)
	OnTransition func(Transition)
	OnEvict      func(key string, index int)

	Logger *log.Logger
}

// DefaultOptions returns Options with the documented defaults applied.
func DefaultOptions() Options {
	return Options{
		PrerenderSiblings: 1,
		Animated:          true,
		TabBarPageSize:    DefaultPageSize,
	}
}

// Transition describes a committed change of the active tab.
type Transition struct {
	From   int
	To     int
	Tab    Tab
	Forced bool
}

type pendingTransition struct {
	index  int
	forced bool
}

// Controller owns the active tab and the render window for one tab set.
// It is not safe for concurrent use; drive it from a single goroutine.
//
// GoToTab never changes the active tab directly. It queues the transition
// and the host applies it on its next turn by calling Flush.
type Controller[T any] struct {
	id      string
	opts    Options
	state   State
	pending *pendingTransition
	content Source[T]
	cache   *PaneCache[T]
	log     *log.Logger
}

// New creates a controller, resolving the initial tab from Page, then
// InitialPage, then 0.
func New[T any](opts Options, content Source[T]) *Controller[T] {
	c := &Controller[T]{
		id:      uuid.NewString(),
		opts:    opts,
		content: content,
		log:     opts.Logger,
	}
	if c.log == nil {
		c.log = log.New(io.Discard, "", 0)
	}
	c.cache = NewPaneCache[T](c.evicted)

	initial := opts.InitialPage
	if opts.Page.IsSet() {
		initial = opts.Page
	}
	// Seeding max below min makes the first Widen produce exactly the band
	// around the initial tab, whatever the list length.
	c.state = State{
		CurrentTab: ResolveIndex(initial, opts.Tabs),
		Window:     Range{Min: len(opts.Tabs) - 1, Max: 0},
	}
	c.state.Window = Widen(c.state.Window, c.state.CurrentTab, opts.PrerenderSiblings)
	return c
}

// ID returns the controller's instance ID.
func (c *Controller[T]) ID() string { return c.id }

// State returns a copy of the current state.
func (c *Controller[T]) State() State { return c.state }

// Tabs returns the current tab list.
func (c *Controller[T]) Tabs() []Tab { return c.opts.Tabs }

// Options returns the options the controller is running with.
func (c *Controller[T]) Options() Options { return c.opts }

// Controlled reports whether an external page identifier drives the
// controller.
func (c *Controller[T]) Controlled() bool { return c.opts.Page.IsSet() }

// Pending returns the queued target index, if any.
func (c *Controller[T]) Pending() (int, bool) {
	if c.pending == nil {
		return 0, false
	}
	return c.pending.index, true
}

// target is the tab the controller is heading to: the pending transition
// if there is one, else the current tab.
func (c *Controller[T]) target() int {
	if c.pending != nil {
		return c.pending.index
	}
	return c.state.CurrentTab
}

// GoToTab requests a switch to index and reports whether it was accepted.
//
// Unforced requests notify OnChange first. In controlled mode that is all
// they do; the owner is expected to answer with a new Page via SetOptions.
// Requests for the tab already targeted and out-of-range requests are
// rejected.
func (c *Controller[T]) GoToTab(index int, force bool) bool {
	if !force && index == c.target() {
		return false
	}
	tabs := c.opts.Tabs
	inRange := index >= 0 && index < len(tabs)
	if !force {
		if c.opts.OnChange != nil && inRange {
			c.opts.OnChange(tabs[index], index)
		}
		if c.Controlled() {
			c.log.Printf("tabs %s: controlled, request for tab %d left to owner", c.id, index)
			return false
		}
	}
	if !inRange {
		return false
	}
	c.pending = &pendingTransition{index: index, forced: force}
	return true
}

// Flush applies the queued transition and reports whether the state
// changed. A target that no longer exists in the tab list is dropped.
func (c *Controller[T]) Flush() bool {
	p := c.pending
	if p == nil {
		return false
	}
	c.pending = nil
	if p.index < 0 || p.index >= len(c.opts.Tabs) {
		return false
	}

	from := c.state.CurrentTab
	c.state.CurrentTab = p.index
	c.state.Window = Widen(c.state.Window, p.index, c.opts.PrerenderSiblings)
	if c.opts.DestroyInactive {
		c.cache.Sweep(c.ShouldMount)
	}

	c.log.Printf("tabs %s: %d -> %d window [%d,%d]", c.id, from, p.index, c.state.Window.Min, c.state.Window.Max)
	if c.opts.OnTransition != nil {
		c.opts.OnTransition(Transition{
			From:   from,
			To:     p.index,
			Tab:    c.opts.Tabs[p.index],
			Forced: p.forced,
		})
	}
	return true
}

// SetOptions replaces the options, reacting to what changed: a new Page is
// followed with a forced transition, a new radius widens the window around
// the active (or newly requested) tab, and under DestroyInactive panes that
// left the band are evicted.
func (c *Controller[T]) SetOptions(next Options) {
	prev := c.opts
	c.opts = next
	if next.Logger != nil {
		c.log = next.Logger
	}

	if !slices.Equal(prev.Tabs, next.Tabs) {
		c.cache.Clear()
		if n := len(next.Tabs); n > 0 && c.state.CurrentTab >= n {
			c.state.CurrentTab = n - 1
			c.state.Window = Widen(c.state.Window, c.state.CurrentTab, next.PrerenderSiblings)
		}
		if c.pending != nil && c.pending.index >= len(next.Tabs) {
			c.pending = nil
		}
	}

	if prev.Page != next.Page && next.Page.IsSet() {
		c.GoToTab(ResolveIndex(next.Page, next.Tabs), true)
	}

	if prev.PrerenderSiblings != next.PrerenderSiblings {
		active := c.state.CurrentTab
		if next.Page.IsSet() {
			active = ResolveIndex(next.Page, next.Tabs)
		}
		c.state.Window = Widen(c.state.Window, active, next.PrerenderSiblings)
	}

	// A smaller radius or a newly enabled DestroyInactive shrinks the band
	// without a transition.
	if next.DestroyInactive {
		c.cache.Sweep(c.ShouldMount)
	}
}

// SetContent replaces the content source. Cached panes were built from
// the old source and are evicted.
func (c *Controller[T]) SetContent(content Source[T]) {
	c.content = content
	c.cache.Clear()
}

// ShouldMount reports whether the tab at index may be mounted now.
func (c *Controller[T]) ShouldMount(index int) bool {
	if index < 0 || index >= len(c.opts.Tabs) {
		return false
	}
	return ShouldMount(index, c.state, c.opts.DestroyInactive, c.opts.PrerenderSiblings)
}

// Mounted returns the indices currently eligible for mounting.
func (c *Controller[T]) Mounted() []int {
	var out []int
	for i := range c.opts.Tabs {
		if c.ShouldMount(i) {
			out = append(out, i)
		}
	}
	return out
}

// Pane returns the pane for the tab at index, resolving and caching it on
// first use. It returns false when the tab may not be mounted or no
// content is bound to it.
func (c *Controller[T]) Pane(index int) (T, bool) {
	var zero T
	if !c.ShouldMount(index) {
		return zero, false
	}
	tab := c.opts.Tabs[index]
	key := CacheKey(tab, index)
	if pane, ok := c.cache.Get(key); ok {
		return pane, true
	}
	pane, ok := c.content.Resolve(tab, index)
	if !ok {
		return zero, false
	}
	c.cache.Put(key, index, pane)
	return pane, true
}

// Cached returns the number of panes currently held.
func (c *Controller[T]) Cached() int {
	return c.cache.Len()
}

// TabBarProps returns the property bundle for a tab bar renderer.
func (c *Controller[T]) TabBarProps() TabBarProps {
	pageSize := c.opts.TabBarPageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return TabBarProps{
		InstanceID: c.id,
		Tabs:       c.opts.Tabs,
		ActiveTab:  c.state.CurrentTab,
		Animated:   c.opts.Animated,
		GoToTab:    func(index int) bool { return c.GoToTab(index, false) },
		OnTabClick: c.opts.OnTabClick,
		Position:   c.opts.TabBarPosition,
		PageSize:   pageSize,
		Style:      c.opts.Style,
	}
}

func (c *Controller[T]) evicted(key string, index int, _ T) {
	c.log.Printf("tabs %s: evicted pane %q (tab %d)", c.id, key, index)
	if c.opts.OnEvict != nil {
		c.opts.OnEvict(key, index)
	}
}
