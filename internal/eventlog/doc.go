// Package eventlog keeps the bounded, ordered record of operator-visible
// progress events.
//
// The log is a sliding window of 50 entries with FIFO eviction: after N
// appends the visible window equals the last min(N, 50) events in append
// order. Every orchestration component appends to a shared Log; nothing ever
// reads it destructively.
package eventlog
