package batch

import (
	"time"

	"matchframe/internal/match"
)

// RunState tracks where the engine is in the batch lifecycle.
type RunState string

const (
	StateIdle       RunState = "idle"
	StateParsing    RunState = "parsing"
	StateSubmitting RunState = "submitting"
	StateRendering  RunState = "rendering"
	StateCompleted  RunState = "completed"
	StateFailed     RunState = "failed"
)

// Status is the lifecycle of one match inside a run. Statuses live in a
// run-local arena; starting a new run discards the previous arena.
type Status string

const (
	StatusIdle      Status = "idle"
	StatusRendering Status = "rendering"
	StatusRendered  Status = "rendered"
	StatusFailed    Status = "failed"
)

// Terminal reports whether the status will not change again this run.
func (s Status) Terminal() bool { return s == StatusRendered || s == StatusFailed }

// Snapshot is a point-in-time copy of orchestrator state, safe to hold
// across further mutations.
type Snapshot struct {
	State     RunState       `json:"state"`
	Busy      bool           `json:"busy"`
	BatchID   string         `json:"batchId,omitempty"`
	Records   []match.Record `json:"records"`
	Statuses  []Status       `json:"statuses"`
	Rendered  int            `json:"rendered"`
	Failed    int            `json:"failed"`
	Assets    []string       `json:"assets"`
	AssetsAge time.Time      `json:"assetsCapturedAt,omitempty"`
	StartedAt time.Time      `json:"startedAt,omitempty"`
}
