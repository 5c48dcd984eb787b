package batch

import (
	"context"

	"matchframe/internal/assets"
	"matchframe/internal/match"
)

// Subscribe registers an observer invoked with a fresh snapshot after every
// state or status mutation. Observers run on the mutating goroutine and must
// not call back into the orchestrator.
func (o *Orchestrator) Subscribe(fn func(Snapshot)) {
	if fn == nil {
		return
	}
	o.mu.Lock()
	o.subscribers = append(o.subscribers, fn)
	o.mu.Unlock()
}

// Snapshot returns a copy of the current run state.
func (o *Orchestrator) Snapshot() Snapshot {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.snapshotLocked()
}

// Busy reports whether a run is in flight.
func (o *Orchestrator) Busy() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.busy
}

// Listing returns the last captured asset listing.
func (o *Orchestrator) Listing() assets.Listing {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.listing
}

// RefreshAssets fetches the remote asset listing and replaces the cached one.
func (o *Orchestrator) RefreshAssets(ctx context.Context) error {
	files, err := o.studio.ListAssets(ctx)
	if err != nil {
		return err
	}
	o.mu.Lock()
	o.listing = assets.NewListing(files)
	o.mu.Unlock()
	o.publish()
	return nil
}

// transition moves the run state and applies an optional arena mutation
// under the same lock, then notifies observers.
func (o *Orchestrator) transition(state RunState, mutate func()) {
	o.mu.Lock()
	o.state = state
	if mutate != nil {
		mutate()
	}
	o.mu.Unlock()
	o.publish()
}

func (o *Orchestrator) setStatus(index int, status Status) {
	o.mu.Lock()
	if index >= 0 && index < len(o.statuses) {
		o.statuses[index] = status
		switch status {
		case StatusRendered:
			o.rendered++
		case StatusFailed:
			o.failed++
		}
	}
	o.mu.Unlock()
	o.publish()
}

func (o *Orchestrator) counts() (rendered, failed int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.rendered, o.failed
}

// publish snapshots under the lock but invokes observers outside it.
func (o *Orchestrator) publish() {
	o.mu.Lock()
	subscribers := append(([]func(Snapshot))(nil), o.subscribers...)
	snapshot := o.snapshotLocked()
	o.mu.Unlock()
	for _, fn := range subscribers {
		fn(snapshot)
	}
}

func (o *Orchestrator) snapshotLocked() Snapshot {
	return Snapshot{
		State:     o.state,
		Busy:      o.busy,
		BatchID:   o.batchID,
		Records:   append([]match.Record(nil), o.records...),
		Statuses:  append([]Status(nil), o.statuses...),
		Rendered:  o.rendered,
		Failed:    o.failed,
		Assets:    o.listing.Filenames(),
		AssetsAge: o.listing.CapturedAt(),
		StartedAt: o.startedAt,
	}
}
