package tabs

import "sort"

// CacheKey returns the key a tab's pane is cached under: the tab key, or
// the positional key when the tab has none.
func CacheKey(tab Tab, index int) string {
	if tab.Key != "" {
		return tab.Key
	}
	return PositionalKey(index)
}

type cachedPane[T any] struct {
	index int
	pane  T
}

// PaneCache holds mounted panes for one controller. OnEvict, when set, is
// called for every pane that leaves the cache.
type PaneCache[T any] struct {
	panes   map[string]cachedPane[T]
	OnEvict func(key string, index int, pane T)
}

// NewPaneCache creates an empty cache.
func NewPaneCache[T any](onEvict func(key string, index int, pane T)) *PaneCache[T] {
	return &PaneCache[T]{
		panes:   make(map[string]cachedPane[T]),
		OnEvict: onEvict,
	}
}

// Get returns the pane stored under key.
func (c *PaneCache[T]) Get(key string) (T, bool) {
	p, ok := c.panes[key]
	return p.pane, ok
}

// Put stores pane under key for the tab at index, replacing any previous
// pane without calling OnEvict.
func (c *PaneCache[T]) Put(key string, index int, pane T) {
	c.panes[key] = cachedPane[T]{index: index, pane: pane}
}

// Evict removes key and reports whether it was present.
func (c *PaneCache[T]) Evict(key string) bool {
	p, ok := c.panes[key]
	if !ok {
		return false
	}
	delete(c.panes, key)
	if c.OnEvict != nil {
		c.OnEvict(key, p.index, p.pane)
	}
	return true
}

// Sweep evicts every pane whose tab index fails keep. It returns the
// number of panes evicted.
func (c *PaneCache[T]) Sweep(keep func(index int) bool) int {
	n := 0
	for _, key := range c.Keys() {
		if !keep(c.panes[key].index) {
			c.Evict(key)
			n++
		}
	}
	return n
}

// Clear evicts everything.
func (c *PaneCache[T]) Clear() {
	for _, key := range c.Keys() {
		c.Evict(key)
	}
}

// Len returns the number of cached panes.
func (c *PaneCache[T]) Len() int {
	return len(c.panes)
}

// Keys returns the cached keys in sorted order.
func (c *PaneCache[T]) Keys() []string {
	keys := make([]string, 0, len(c.panes))
	for k := range c.panes {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
