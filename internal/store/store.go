// Package store persists tab transition events to a JSONL session log and
// provides indexed read-back of past visits. One store is created per
// `tabkit view` invocation in cmd/tabkit/execute.go; `tabkit history` reopens
// the latest session file read-only.
package store

import "time"

// EventKind identifies what a logged event records.
type EventKind string

const (
	EventRequest  EventKind = "request"  // accepted GoToTab
	EventRejected EventKind = "rejected" // GoToTab answered false
	EventCommit   EventKind = "commit"   // flushed transition
	EventEvict    EventKind = "evict"    // pane dropped from the cache
)

// Event is one line of the session log.
type Event struct {
	Kind      EventKind `json:"kind"`
	Timestamp time.Time `json:"ts"`
	Instance  string    `json:"instance,omitempty"`
	From      int       `json:"from"`
	To        int       `json:"to"`
	Key       string    `json:"key,omitempty"`
	Title     string    `json:"title,omitempty"`
	Forced    bool      `json:"forced,omitempty"`
}

// Writer persists events to durable storage.
type Writer interface {
	Append(e Event) error
	Close() error
}

// Reader retrieves past visits from storage.
type Reader interface {
	Visits() ([]Visit, error)
	VisitLog(n int) ([]Event, error)
	Tabs() ([]TabSummary, error)
	SessionSummary() (SessionSummary, error)
}

// Store combines Writer and Reader into a single session-scoped handle.
type Store interface {
	Writer
	Reader
}

// Visit is the span between one commit and the next. EndAt is zero while
// the visit is still open.
type Visit struct {
	Number  int
	From    int
	To      int
	Key     string
	Title   string
	Forced  bool
	StartAt time.Time
	EndAt   time.Time
}

// Duration returns how long the visit lasted, or zero while it is open.
func (v Visit) Duration() time.Duration {
	if v.EndAt.IsZero() {
		return 0
	}
	return v.EndAt.Sub(v.StartAt)
}

// TabSummary aggregates the visits to one tab.
type TabSummary struct {
	Key    string
	Title  string
	Index  int
	Visits int
	LastAt time.Time
}

// SessionSummary summarises the session.
type SessionSummary struct {
	SessionID string
	StartedAt time.Time
	Requests  int
	Rejected  int
	Commits   int
	Evictions int
	LastKey   string
	LastTitle string
	LastIndex int
}
