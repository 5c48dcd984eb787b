package eventlog

import (
	"sync"
	"time"
)

// Capacity is the fixed size of the sliding window; the oldest entry is
// evicted once the window is full.
const Capacity = 50

// Severity classifies an event for operator-facing styling.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
)

// Event is one operator-visible log entry. Append order is authoritative;
// the timestamp is display-only.
type Event struct {
	Message   string   `json:"message"`
	Severity  Severity `json:"severity"`
	Timestamp string   `json:"timestamp"`
}

// Log is an append-only, capacity-bounded, time-ordered event record. Appends
// and snapshots are serialized so any component may write from any stage of a
// run, including failure paths, while readers observe a consistent window.
type Log struct {
	mu     sync.Mutex
	events []Event
	now    func() time.Time
}

// New returns an empty log.
func New() *Log {
	return &Log{now: time.Now}
}

// NewWithClock returns an empty log using the supplied clock for timestamps.
func NewWithClock(now func() time.Time) *Log {
	if now == nil {
		now = time.Now
	}
	return &Log{now: now}
}

// Append records one event, evicting the oldest entry when the window is full.
func (l *Log) Append(message string, severity Severity) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, Event{
		Message:   message,
		Severity:  severity,
		Timestamp: l.now().Format("15:04:05"),
	})
	if len(l.events) > Capacity {
		l.events = l.events[len(l.events)-Capacity:]
	}
}

// Info appends an informational event.
func (l *Log) Info(message string) { l.Append(message, SeverityInfo) }

// Success appends a success event.
func (l *Log) Success(message string) { l.Append(message, SeveritySuccess) }

// Error appends an error event.
func (l *Log) Error(message string) { l.Append(message, SeverityError) }

// Snapshot returns the visible window in append order, most-recent-last. The
// returned slice is a copy and stays stable across later appends.
func (l *Log) Snapshot() []Event {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Event, len(l.events))
	copy(out, l.events)
	return out
}

// Len reports the number of events currently visible.
func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.events)
}
