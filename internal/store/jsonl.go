package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrNoSessions is returned by Latest when dir holds no session logs.
var ErrNoSessions = errors.New("store: no session logs")

const fileExt = ".jsonl"

// JSONL is a Store backed by an append-only JSONL file. Each line is a
// JSON-serialized Event. The file is synced after every Append.
//
// Session identity: "<unix-timestamp>-<short-uuid>.jsonl", so file names
// sort chronologically for EnforceRetention.
type JSONL struct {
	file      *os.File
	mu        sync.Mutex
	idx       *fileIndex
	sessionID string
	startedAt time.Time
	pos       int64 // current write position in the file
}

// NewJSONL creates a new session log in dir. dir is created with
// os.MkdirAll if it does not exist.
func NewJSONL(dir string) (*JSONL, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("store: mkdir %q: %w", dir, err)
	}
	now := time.Now()
	sessionID := fmt.Sprintf("%d-%s", now.Unix(), uuid.NewString()[:8])
	path := filepath.Join(dir, sessionID+fileExt)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR|os.O_EXCL, 0644)
	if err != nil {
		return nil, fmt.Errorf("store: open %q: %w", path, err)
	}
	return &JSONL{
		file:      f,
		idx:       newFileIndex(),
		sessionID: sessionID,
		startedAt: now,
	}, nil
}

// Open reopens an existing session log and rebuilds its index. Malformed
// lines are skipped. Further Appends continue the same session.
func Open(path string) (*JSONL, error) {
	f, err := os.OpenFile(path, os.O_RDWR, 0644)
	if err != nil {
		return nil, fmt.Errorf("store: open %q: %w", path, err)
	}
	data, err := io.ReadAll(f)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("store: read %q: %w", path, err)
	}

	j := &JSONL{
		file:      f,
		idx:       newFileIndex(),
		sessionID: strings.TrimSuffix(filepath.Base(path), fileExt),
		pos:       int64(len(data)),
	}
	var offset int64
	for len(data) > 0 {
		line, rest, _ := bytes.Cut(data, []byte("\n"))
		lineLen := int64(len(data) - len(rest))
		if len(bytes.TrimSpace(line)) > 0 {
			var e Event
			if err := json.Unmarshal(line, &e); err != nil {
				log.Printf("store: skipping malformed line at offset %d in %s: %v", offset, path, err)
			} else {
				j.idx.onAppend(e, offset)
			}
		}
		offset += lineLen
		data = rest
	}

	j.startedAt = j.idx.firstAt
	if j.startedAt.IsZero() {
		if info, err := f.Stat(); err == nil {
			j.startedAt = info.ModTime()
		}
	}
	return j, nil
}

// Latest returns the path of the most recent session log in dir.
func Latest(dir string) (string, error) {
	files, err := sessionFiles(dir)
	if err != nil {
		return "", err
	}
	if len(files) == 0 {
		return "", ErrNoSessions
	}
	return filepath.Join(dir, files[len(files)-1]), nil
}

// Append serializes e as a JSON line, writes it to the file, and syncs.
// It is safe to call from multiple goroutines.
func (j *JSONL) Append(e Event) error {
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("store: marshal: %w", err)
	}
	data = append(data, '\n')

	j.mu.Lock()
	defer j.mu.Unlock()

	lineOffset := j.pos
	if _, err := j.file.WriteAt(data, lineOffset); err != nil {
		return fmt.Errorf("store: write: %w", err)
	}
	if err := j.file.Sync(); err != nil {
		return fmt.Errorf("store: sync: %w", err)
	}
	j.pos += int64(len(data))
	j.idx.onAppend(e, lineOffset)
	return nil
}

// Close closes the underlying file.
func (j *JSONL) Close() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.file.Close()
}

// Path returns the session log's file name.
func (j *JSONL) Path() string {
	return j.file.Name()
}

// Visits returns all visits in this session, the last one possibly open.
// The returned slice is a copy and safe to mutate.
func (j *JSONL) Visits() ([]Visit, error) {
	j.mu.Lock()
	result := make([]Visit, len(j.idx.visits))
	copy(result, j.idx.visits)
	j.mu.Unlock()
	return result, nil
}

// VisitLog returns every event logged during visit n (1-based), starting
// with its commit, reading from the file using the byte-offset index.
func (j *JSONL) VisitLog(n int) ([]Event, error) {
	j.mu.Lock()
	if n < 1 || n > len(j.idx.ranges) {
		j.mu.Unlock()
		return nil, fmt.Errorf("store: visit %d not found", n)
	}
	r := j.idx.ranges[n-1]
	if r.end < 0 {
		r.end = j.pos
	}
	j.mu.Unlock()

	size := r.end - r.start
	if size <= 0 {
		return nil, nil
	}
	buf := make([]byte, size)
	if _, err := j.file.ReadAt(buf, r.start); err != nil {
		return nil, fmt.Errorf("store: read visit %d: %w", n, err)
	}
	var events []Event
	for _, line := range bytes.Split(buf, []byte("\n")) {
		if len(line) == 0 {
			continue
		}
		var e Event
		if err := json.Unmarshal(line, &e); err != nil {
			log.Printf("store: skipping malformed line in visit %d: %v", n, err)
			continue
		}
		events = append(events, e)
	}
	return events, nil
}

// Tabs returns per-tab visit counts in first-visit order.
func (j *JSONL) Tabs() ([]TabSummary, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	result := make([]TabSummary, 0, len(j.idx.tabOrder))
	for _, id := range j.idx.tabOrder {
		result = append(result, *j.idx.tabs[id])
	}
	return result, nil
}

// SessionSummary returns metadata about the session derived from the
// in-memory index.
func (j *JSONL) SessionSummary() (SessionSummary, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	s := SessionSummary{
		SessionID: j.sessionID,
		StartedAt: j.startedAt,
		Requests:  j.idx.requests,
		Rejected:  j.idx.rejected,
		Commits:   len(j.idx.visits),
		Evictions: j.idx.evictions,
	}
	if v, ok := j.idx.lastVisit(); ok {
		s.LastKey = v.Key
		s.LastTitle = v.Title
		s.LastIndex = v.To
	}
	return s, nil
}

// EnforceRetention removes the oldest session log files in dir, keeping at
// most maxKeep files. If maxKeep is 0, no files are removed. Returns nil if
// dir does not exist or is empty.
func EnforceRetention(dir string, maxKeep int) error {
	if maxKeep <= 0 {
		return nil
	}
	files, err := sessionFiles(dir)
	if err != nil {
		return err
	}

	toDelete := len(files) - maxKeep
	for i := 0; i < toDelete; i++ {
		path := filepath.Join(dir, files[i])
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("store: remove %q: %w", path, err)
		}
	}
	return nil
}

// sessionFiles lists the session log names in dir, oldest first.
func sessionFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("store: read dir %q: %w", dir, err)
	}

	var files []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), fileExt) {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files) // timestamp-prefixed names sort chronologically
	return files, nil
}
