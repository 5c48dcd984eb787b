package batch_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"matchframe/internal/batch"
	"matchframe/internal/eventlog"
	"matchframe/internal/notifications"
	"matchframe/internal/services/studio"
	"matchframe/internal/testsupport"
)

func newOrchestrator(t *testing.T) (*batch.Orchestrator, *testsupport.StudioStub, *eventlog.Log) {
	t.Helper()
	stub := testsupport.NewStudioStub(t)
	cfg := testsupport.NewConfig(t, testsupport.WithStudioURL(stub.URL()))
	events := eventlog.New()
	orch := batch.New(cfg, studio.NewClient(cfg), events, notifications.NewService(cfg), nil)
	return orch, stub, events
}

const threeMatches = "Arsenal vs Chelsea 1.85 3.20 4.10\nLyon vs Nice\nPorto vs Braga 2.00 3.10"

func TestRunBatchRendersInSubmissionOrder(t *testing.T) {
	orch, stub, _ := newOrchestrator(t)

	records, err := orch.RunBatch(context.Background(), threeMatches, "")
	if err != nil {
		t.Fatalf("RunBatch: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}

	want := []string{"Arsenal vs Chelsea", "Lyon vs Nice", "Porto vs Braga"}
	got := stub.RenderOrder()
	if len(got) != len(want) {
		t.Fatalf("expected %d renders, got %v", len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("render %d out of order: got %q, want %q", i, got[i], want[i])
		}
	}

	snapshot := orch.Snapshot()
	if snapshot.State != batch.StateCompleted {
		t.Fatalf("expected completed state, got %q", snapshot.State)
	}
	for i, status := range snapshot.Statuses {
		if status != batch.StatusRendered {
			t.Fatalf("index %d: expected rendered, got %q", i, status)
		}
	}
	if snapshot.Rendered != 3 || snapshot.Failed != 0 {
		t.Fatalf("unexpected counts: %d rendered, %d failed", snapshot.Rendered, snapshot.Failed)
	}
}

func TestRunBatchIsolatesPerMatchFailures(t *testing.T) {
	orch, stub, events := newOrchestrator(t)
	stub.FailRender("Lyon vs Nice", "template rejected matchup")

	records, err := orch.RunBatch(context.Background(), threeMatches, "")
	if err != nil {
		t.Fatalf("RunBatch: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}

	snapshot := orch.Snapshot()
	wantStatuses := []batch.Status{batch.StatusRendered, batch.StatusFailed, batch.StatusRendered}
	for i, want := range wantStatuses {
		if snapshot.Statuses[i] != want {
			t.Fatalf("index %d: expected %q, got %q", i, want, snapshot.Statuses[i])
		}
	}
	if snapshot.State != batch.StateCompleted {
		t.Fatalf("per-match failure must not fail the run, got state %q", snapshot.State)
	}

	var summary string
	for _, event := range events.Snapshot() {
		if strings.HasPrefix(event.Message, "Batch complete") {
			summary = event.Message
		}
	}
	if !strings.Contains(summary, "2 rendered, 1 failed") {
		t.Fatalf("unexpected summary event %q", summary)
	}
}

func TestRunBatchWithNoValidLinesIsANoOp(t *testing.T) {
	orch, stub, events := newOrchestrator(t)

	records, err := orch.RunBatch(context.Background(), "no separator here\n\n...\n", "")
	if err != nil {
		t.Fatalf("RunBatch: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("expected no records, got %d", len(records))
	}
	if stub.SubmitCalls() != 0 {
		t.Fatal("empty parse must not reach the backend")
	}
	if orch.Snapshot().State != batch.StateCompleted {
		t.Fatalf("expected completed state, got %q", orch.Snapshot().State)
	}

	found := false
	for _, event := range events.Snapshot() {
		if strings.Contains(event.Message, "No valid matches") {
			found = true
		}
	}
	if !found {
		t.Fatal("expected a no-valid-matches event")
	}
}

func TestRunBatchSubmissionFailureFailsTheRun(t *testing.T) {
	orch, stub, events := newOrchestrator(t)
	stub.FailSubmit("optimizer rejected batch")

	_, err := orch.RunBatch(context.Background(), threeMatches, "")
	if err == nil {
		t.Fatal("expected submission error")
	}
	if orch.Snapshot().State != batch.StateFailed {
		t.Fatalf("expected failed state, got %q", orch.Snapshot().State)
	}
	if got := stub.RenderOrder(); len(got) != 0 {
		t.Fatalf("no renders may run after a failed submission, got %v", got)
	}

	errorEvents := 0
	for _, event := range events.Snapshot() {
		if event.Severity == eventlog.SeverityError {
			errorEvents++
			if !strings.Contains(event.Message, "optimizer rejected batch") {
				t.Fatalf("expected backend message in event, got %q", event.Message)
			}
		}
	}
	if errorEvents != 1 {
		t.Fatalf("expected exactly one error event, got %d", errorEvents)
	}
}

func TestRunBatchRejectsConcurrentRuns(t *testing.T) {
	orch, stub, _ := newOrchestrator(t)
	release := stub.HoldRender("Arsenal vs Chelsea")
	defer release()

	done := make(chan error, 1)
	go func() {
		_, err := orch.RunBatch(context.Background(), "Arsenal vs Chelsea", "")
		done <- err
	}()

	waitFor(t, orch.Busy)

	if _, err := orch.RunBatch(context.Background(), "Lyon vs Nice", ""); !errors.Is(err, batch.ErrBusy) {
		t.Fatalf("expected ErrBusy, got %v", err)
	}

	release()
	if err := <-done; err != nil {
		t.Fatalf("first run failed: %v", err)
	}
	if got := stub.RenderOrder(); len(got) != 1 {
		t.Fatalf("rejected run must not render, got %v", got)
	}

	// The engine accepts new runs once the first one finishes.
	if _, err := orch.RunBatch(context.Background(), "Lyon vs Nice", ""); err != nil {
		t.Fatalf("follow-up run failed: %v", err)
	}
}

func TestRunBatchStopsAtCancellation(t *testing.T) {
	orch, stub, _ := newOrchestrator(t)
	release := stub.HoldRender("Lyon vs Nice")
	defer release()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := orch.RunBatch(ctx, threeMatches, "")
		done <- err
	}()

	waitFor(t, func() bool {
		snapshot := orch.Snapshot()
		return len(snapshot.Statuses) == 3 && snapshot.Statuses[1] == batch.StatusRendering
	})
	cancel()
	release()

	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}

	snapshot := orch.Snapshot()
	if snapshot.State != batch.StateFailed {
		t.Fatalf("expected failed state after cancellation, got %q", snapshot.State)
	}
	if snapshot.Statuses[0] != batch.StatusRendered {
		t.Fatalf("first match should have rendered, got %q", snapshot.Statuses[0])
	}
	if snapshot.Statuses[2] != batch.StatusIdle {
		t.Fatalf("third match must never start after cancellation, got %q", snapshot.Statuses[2])
	}
}

func TestRunBatchRefreshesAssetListing(t *testing.T) {
	orch, _, _ := newOrchestrator(t)

	if _, err := orch.RunBatch(context.Background(), "Arsenal vs Chelsea", ""); err != nil {
		t.Fatalf("RunBatch: %v", err)
	}

	listing := orch.Listing()
	if !listing.IsRendered("Arsenal", "Chelsea") {
		t.Fatalf("expected listing to contain rendered asset, got %v", listing.Filenames())
	}
}

func TestSubscribeObservesStatusMutations(t *testing.T) {
	orch, _, _ := newOrchestrator(t)

	seen := make(chan batch.Snapshot, 64)
	orch.Subscribe(func(s batch.Snapshot) { seen <- s })

	if _, err := orch.RunBatch(context.Background(), "Arsenal vs Chelsea", ""); err != nil {
		t.Fatalf("RunBatch: %v", err)
	}
	close(seen)

	var sawRendering, sawCompleted bool
	for snapshot := range seen {
		if len(snapshot.Statuses) == 1 && snapshot.Statuses[0] == batch.StatusRendering {
			sawRendering = true
		}
		if snapshot.State == batch.StateCompleted {
			sawCompleted = true
		}
	}
	if !sawRendering || !sawCompleted {
		t.Fatalf("observer missed transitions: rendering=%v completed=%v", sawRendering, sawCompleted)
	}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not reached before deadline")
}
