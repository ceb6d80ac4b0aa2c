// Package tabs implements the tab controller: page resolution, the render
// window, controlled/uncontrolled transitions and content association.
package tabs

import (
	"strconv"
	"strings"
)

// Tab describes one tab. Key is optional but should be unique when set.
type Tab struct {
	Key   string
	Title string
}

// pageKind tags which variant a Page holds.
type pageKind int

const (
	pageAbsent pageKind = iota
	pageIndex
	pageKey
)

// Page identifies a tab either by position or by key. The zero value is
// absent, which resolves to the first tab.
type Page struct {
	kind  pageKind
	index int
	key   string
}

// NoPage is the absent page identifier.
var NoPage = Page{}

// Index returns a positional page identifier.
func Index(i int) Page {
	return Page{kind: pageIndex, index: i}
}

// Key returns a key-based page identifier.
func Key(k string) Page {
	return Page{kind: pageKey, key: k}
}

// ParsePage interprets s as an index when it is an integer, as a key
// otherwise. The empty string is NoPage.
func ParsePage(s string) Page {
	s = strings.TrimSpace(s)
	if s == "" {
		return NoPage
	}
	if n, err := strconv.Atoi(s); err == nil {
		return Index(n)
	}
	return Key(s)
}

// IsSet reports whether the identifier is present.
func (p Page) IsSet() bool {
	return p.kind != pageAbsent
}

// String returns the identifier as written in config: the index, the key,
// or "" when absent.
func (p Page) String() string {
	switch p.kind {
	case pageIndex:
		return strconv.Itoa(p.index)
	case pageKey:
		return p.key
	default:
		return ""
	}
}

// ResolveIndex turns a page identifier into a concrete index into tabs.
//
// Keys resolve to the last tab carrying that key; an unknown key resolves
// to 0. Indices are clamped into [0, len(tabs)-1]. An empty tab list always
// resolves to 0.
func ResolveIndex(p Page, tabs []Tab) int {
	index := 0
	switch p.kind {
	case pageKey:
		for i, t := range tabs {
			if t.Key == p.key {
				index = i
			}
		}
	case pageIndex:
		index = p.index
	}

	switch {
	case index < 0, len(tabs) == 0:
		return 0
	case index >= len(tabs):
		return len(tabs) - 1
	}
	return index
}
