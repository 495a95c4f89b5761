// Package activity keeps a short in-memory trail of recent requests for
// debugging and support. It is intentionally bounded and not persisted.
package activity

import (
	"sync"
	"time"
)

// DefaultCapacity is the number of entries retained by default.
const DefaultCapacity = 20

// Entry records a single handled operation.
type Entry struct {
	Timestamp time.Time `json:"timestamp"`
	ActorID   int64     `json:"actor_id"`
	Operation string    `json:"operation"`
	Detail    string    `json:"detail,omitempty"`
}

// Log is a fixed-capacity ring of recent entries. Safe for concurrent use.
type Log struct {
	mu      sync.Mutex
	entries []Entry
	next    int
	full    bool
}

// NewLog creates a Log retaining up to capacity entries.
// A non-positive capacity falls back to DefaultCapacity.
func NewLog(capacity int) *Log {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Log{entries: make([]Entry, capacity)}
}

// Record appends an entry, evicting the oldest when full.
func (l *Log) Record(actorID int64, operation, detail string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries[l.next] = Entry{
		Timestamp: time.Now().UTC(),
		ActorID:   actorID,
		Operation: operation,
		Detail:    detail,
	}
	l.next = (l.next + 1) % len(l.entries)
	if l.next == 0 {
		l.full = true
	}
}

// Recent returns entries from oldest to newest.
func (l *Log) Recent() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.full {
		out := make([]Entry, l.next)
		copy(out, l.entries[:l.next])
		return out
	}

	out := make([]Entry, 0, len(l.entries))
	out = append(out, l.entries[l.next:]...)
	out = append(out, l.entries[:l.next]...)
	return out
}

// Len returns the number of retained entries.
func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.full {
		return len(l.entries)
	}
	return l.next
}
