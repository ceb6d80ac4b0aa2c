package tabs

import "strconv"

// Keys used when content items are bound to tabs without an explicit key.
const (
	PositionalPrefix = "$i$-"
	CatchAllKey      = "$ALL$"
)

// PositionalKey returns the fallback key for the item at index.
func PositionalKey(index int) string {
	return PositionalPrefix + strconv.Itoa(index)
}

// Content is the value bound to a tab: either Static or Lazy.
type Content[T any] interface {
	resolve(tab Tab, index int) T
}

// Static is content known up front.
type Static[T any] struct {
	Value T
}

func (s Static[T]) resolve(Tab, int) T { return s.Value }

// Lazy is content computed on demand, only when the tab is resolved.
type Lazy[T any] func(tab Tab, index int) T

func (f Lazy[T]) resolve(tab Tab, index int) T { return f(tab, index) }

// Item is one piece of caller-supplied content. Key may be empty.
type Item[T any] struct {
	Key     string
	Content Content[T]
}

// Source maps tabs to content items.
type Source[T any] struct {
	byKey map[string]Content[T]
	n     int
}

// NewSource builds a Source from ordered items.
//
// With several items every item is reachable by its positional key, and
// items with an explicit key are also reachable by it; explicit keys win a
// collision. A single item is shared by all tabs.
func NewSource[T any](items ...Item[T]) Source[T] {
	s := Source[T]{byKey: make(map[string]Content[T], 2*len(items)), n: len(items)}
	switch {
	case len(items) > 1:
		for i, it := range items {
			if it.Content != nil {
				s.byKey[PositionalKey(i)] = it.Content
			}
		}
		for _, it := range items {
			if it.Key != "" && it.Content != nil {
				s.byKey[it.Key] = it.Content
			}
		}
	case len(items) == 1 && items[0].Content != nil:
		s.byKey[CatchAllKey] = items[0].Content
	}
	return s
}

// Len returns the number of items the source was built from.
func (s Source[T]) Len() int {
	return s.n
}

// Resolve returns the content for the tab at index. Lookup order is the
// tab's key, the positional key for index, then the catch-all. Lazy content
// is evaluated here.
func (s Source[T]) Resolve(tab Tab, index int) (T, bool) {
	c, ok := s.lookup(tab, index)
	if !ok {
		var zero T
		return zero, false
	}
	return c.resolve(tab, index), true
}

func (s Source[T]) lookup(tab Tab, index int) (Content[T], bool) {
	if tab.Key != "" {
		if c, ok := s.byKey[tab.Key]; ok {
			return c, true
		}
	}
	if c, ok := s.byKey[PositionalKey(index)]; ok {
		return c, true
	}
	c, ok := s.byKey[CatchAllKey]
	return c, ok
}
