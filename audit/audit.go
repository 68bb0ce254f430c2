// Package audit provides an in-memory pathoram.Recorder that stamps
// every server call with a k-sortable id, for tests and tooling that
// need to verify access-shape uniformity across an operation. It never
// records filenames, leaf ids, or block contents — only the operation
// name and node key the core already exposes to a Recorder.
package audit

import (
	"sync"

	"github.com/segmentio/ksuid"
)

// Entry is one recorded server call.
type Entry struct {
	ID   ksuid.KSUID
	Op   string
	Node int
}

// Ring is a fixed-capacity ring buffer of Entry, safe for concurrent
// use by a single client's sequential calls (the core's concurrency
// model already serializes these; the mutex here only guards Entries
// against a concurrent reader).
type Ring struct {
	mu       sync.Mutex
	capacity int
	entries  []Entry
}

// NewRing creates a ring buffer holding at most capacity entries; once
// full, the oldest entry is dropped to make room for the newest.
func NewRing(capacity int) *Ring {
	if capacity <= 0 {
		capacity = 1024
	}
	return &Ring{capacity: capacity}
}

// Record implements pathoram.Recorder.
func (r *Ring) Record(op string, node int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, Entry{ID: ksuid.New(), Op: op, Node: node})
	if len(r.entries) > r.capacity {
		r.entries = r.entries[len(r.entries)-r.capacity:]
	}
}

// Entries returns a copy of the currently buffered entries, oldest
// first.
func (r *Ring) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}
