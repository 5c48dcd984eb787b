package eventlog_test

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"matchframe/internal/eventlog"
)

func TestAppendAndSnapshotOrder(t *testing.T) {
	log := eventlog.New()
	log.Info("first")
	log.Success("second")
	log.Error("third")

	events := log.Snapshot()
	if len(events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(events))
	}
	if events[0].Message != "first" || events[2].Message != "third" {
		t.Fatalf("append order not preserved: %+v", events)
	}
	if events[1].Severity != eventlog.SeveritySuccess {
		t.Fatalf("severity lost: %+v", events[1])
	}
}

func TestSlidingWindowEviction(t *testing.T) {
	log := eventlog.New()
	for i := 0; i < 60; i++ {
		log.Info(fmt.Sprintf("event %d", i))
	}

	events := log.Snapshot()
	if len(events) != eventlog.Capacity {
		t.Fatalf("expected %d events, got %d", eventlog.Capacity, len(events))
	}
	if events[0].Message != "event 10" {
		t.Fatalf("oldest surviving event = %q", events[0].Message)
	}
	if events[len(events)-1].Message != "event 59" {
		t.Fatalf("newest event = %q", events[len(events)-1].Message)
	}
}

func TestSnapshotStableWithoutAppend(t *testing.T) {
	log := eventlog.New()
	log.Info("only")

	first := log.Snapshot()
	second := log.Snapshot()
	if len(first) != len(second) || first[0] != second[0] {
		t.Fatalf("snapshots differ without intervening append: %+v vs %+v", first, second)
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	log := eventlog.New()
	log.Info("original")

	snap := log.Snapshot()
	snap[0].Message = "mutated"

	if log.Snapshot()[0].Message != "original" {
		t.Fatal("snapshot mutation leaked into the log")
	}
}

func TestTimestampUsesClock(t *testing.T) {
	fixed := time.Date(2026, 2, 14, 19, 30, 5, 0, time.Local)
	log := eventlog.NewWithClock(func() time.Time { return fixed })
	log.Info("kickoff")

	if got := log.Snapshot()[0].Timestamp; got != "19:30:05" {
		t.Fatalf("timestamp = %q", got)
	}
}

func TestConcurrentAppends(t *testing.T) {
	log := eventlog.New()
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				log.Info("concurrent")
			}
		}()
	}
	wg.Wait()

	if got := log.Len(); got != eventlog.Capacity {
		t.Fatalf("expected full window after 200 appends, got %d", got)
	}
}
