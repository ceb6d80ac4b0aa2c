package main

import (
	"log"
	"time"

	"github.com/LISSConsulting/LISSTech.TabKit/internal/store"
	"github.com/LISSConsulting/LISSTech.TabKit/internal/tabs"
)

// recorder turns controller and viewer callbacks into session log events.
// Write failures are logged and counted but never interrupt the viewer.
type recorder struct {
	w        store.Writer
	instance string
	tabs     func() []tabs.Tab
	now      func() time.Time
	failures int
}

func newRecorder(w store.Writer) *recorder {
	return &recorder{
		w:    w,
		tabs: func() []tabs.Tab { return nil },
		now:  time.Now,
	}
}

// wire hooks the recorder into controller options before the controller
// is created.
func (r *recorder) wire(opts *tabs.Options) {
	opts.OnTransition = r.commit
	opts.OnEvict = r.evict
}

// attach binds the recorder to the controller it logs for and opens the
// first visit on the initial tab.
func (r *recorder) attach(ctrl *tabs.Controller[string]) {
	r.instance = ctrl.ID()
	r.tabs = ctrl.Tabs

	list := ctrl.Tabs()
	cur := ctrl.State().CurrentTab
	if cur < len(list) {
		r.commit(tabs.Transition{From: cur, To: cur, Tab: list[cur]})
	}
}

// request records a tab request and whether the controller accepted it.
func (r *recorder) request(from, to int, accepted bool) {
	kind := store.EventRequest
	if !accepted {
		kind = store.EventRejected
	}
	e := store.Event{Kind: kind, From: from, To: to}
	if list := r.tabs(); to >= 0 && to < len(list) {
		e.Key, e.Title = list[to].Key, list[to].Title
	}
	r.append(e)
}

// commit records a flushed transition.
func (r *recorder) commit(t tabs.Transition) {
	r.append(store.Event{
		Kind:   store.EventCommit,
		From:   t.From,
		To:     t.To,
		Key:    t.Tab.Key,
		Title:  t.Tab.Title,
		Forced: t.Forced,
	})
}

// evict records a pane leaving the cache. key is the cache key, which is
// the tab key for keyed tabs.
func (r *recorder) evict(key string, index int) {
	e := store.Event{Kind: store.EventEvict, From: index, To: index, Key: key}
	if list := r.tabs(); index >= 0 && index < len(list) {
		e.Title = list[index].Title
	}
	r.append(e)
}

func (r *recorder) append(e store.Event) {
	e.Timestamp = r.now()
	e.Instance = r.instance
	if err := r.w.Append(e); err != nil {
		r.failures++
		log.Printf("store: append %s event: %v", e.Kind, err)
	}
}
