package tabs

import "math"

// Unbounded is the prerender radius that keeps every tab mounted.
const Unbounded = -1

// Range is an inclusive span of tab indices.
type Range struct {
	Min, Max int
}

// Contains reports whether i lies within the range.
func (r Range) Contains(i int) bool {
	return r.Min <= i && i <= r.Max
}

// State is the controller's mutable state.
type State struct {
	CurrentTab int
	Window     Range
}

// Band returns the sliding window [active-radius, active+radius].
func Band(active, radius int) Range {
	if radius == Unbounded {
		return Range{Min: math.MinInt, Max: math.MaxInt}
	}
	if radius < 0 {
		radius = 0
	}
	lo, hi := active-radius, active+radius
	// Saturate rather than wrap for very large radii.
	if radius > 0 && lo > active {
		lo = math.MinInt
	}
	if radius > 0 && hi < active {
		hi = math.MaxInt
	}
	return Range{Min: lo, Max: hi}
}

// Widen grows r so that it also covers the band around active. The result
// is always a superset of r and applying it twice changes nothing.
func Widen(r Range, active, radius int) Range {
	b := Band(active, radius)
	return Range{
		Min: min(r.Min, b.Min),
		Max: max(r.Max, b.Max),
	}
}

// ShouldMount decides whether the tab at index may be mounted.
//
// With destroyInactive the decision uses the sliding band around the active
// tab, so tabs that fall out of it are unmounted. Otherwise it uses the
// accumulated window, so a tab once mounted stays mounted.
func ShouldMount(index int, st State, destroyInactive bool, radius int) bool {
	if destroyInactive {
		return Band(st.CurrentTab, radius).Contains(index)
	}
	return st.Window.Contains(index)
}
