package store

import (
	"time"

	"github.com/LISSConsulting/LISSTech.TabKit/internal/tabs"
)

// visitRange is the byte range of one visit in the JSONL file: from its
// commit line to the first byte of the next commit line. end is -1 while
// the visit is open.
type visitRange struct {
	start int64
	end   int64
}

// fileIndex maintains in-memory byte-offset bookmarks per visit and
// per-tab counters. It is updated by onAppend as each Event is written.
type fileIndex struct {
	visits []Visit
	ranges []visitRange // parallel to visits

	tabs     map[string]*TabSummary
	tabOrder []string // first-visit order

	requests  int
	rejected  int
	evictions int
	firstAt   time.Time
}

func newFileIndex() *fileIndex {
	return &fileIndex{tabs: make(map[string]*TabSummary)}
}

// tabID identifies the tab an event refers to. Unkeyed tabs are tracked by
// position.
func tabID(e Event) string {
	return tabs.CacheKey(tabs.Tab{Key: e.Key}, e.To)
}

// onAppend updates the index when an Event line has been appended.
// lineOffset is the byte offset of the first byte of the written line.
func (idx *fileIndex) onAppend(e Event, lineOffset int64) {
	if idx.firstAt.IsZero() {
		idx.firstAt = e.Timestamp
	}

	switch e.Kind {
	case EventRequest:
		idx.requests++
	case EventRejected:
		idx.requests++
		idx.rejected++
	case EventEvict:
		idx.evictions++
	case EventCommit:
		if n := len(idx.visits); n > 0 {
			idx.visits[n-1].EndAt = e.Timestamp
			idx.ranges[n-1].end = lineOffset
		}
		idx.visits = append(idx.visits, Visit{
			Number:  len(idx.visits) + 1,
			From:    e.From,
			To:      e.To,
			Key:     e.Key,
			Title:   e.Title,
			Forced:  e.Forced,
			StartAt: e.Timestamp,
		})
		idx.ranges = append(idx.ranges, visitRange{start: lineOffset, end: -1})

		id := tabID(e)
		ts, ok := idx.tabs[id]
		if !ok {
			ts = &TabSummary{Key: e.Key}
			idx.tabs[id] = ts
			idx.tabOrder = append(idx.tabOrder, id)
		}
		ts.Title = e.Title
		ts.Index = e.To
		ts.Visits++
		ts.LastAt = e.Timestamp
	}
}

// lastVisit returns the most recent visit, if any.
func (idx *fileIndex) lastVisit() (Visit, bool) {
	if len(idx.visits) == 0 {
		return Visit{}, false
	}
	return idx.visits[len(idx.visits)-1], true
}
