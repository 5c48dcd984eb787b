package render_test

import (
	"context"
	"strings"
	"testing"

	"matchframe/internal/eventlog"
	"matchframe/internal/match"
	"matchframe/internal/notifications"
	"matchframe/internal/render"
	"matchframe/internal/services/studio"
	"matchframe/internal/testsupport"
)

func newDriver(t *testing.T) (*render.Driver, *testsupport.StudioStub, *eventlog.Log) {
	t.Helper()
	stub := testsupport.NewStudioStub(t)
	cfg := testsupport.NewConfig(t, testsupport.WithStudioURL(stub.URL()))
	events := eventlog.New()
	driver := render.NewDriver(studio.NewClient(cfg), events, notifications.NewService(cfg), nil)
	return driver, stub, events
}

func TestRenderSuccessLogsAndReturnsFilename(t *testing.T) {
	driver, stub, events := newDriver(t)

	filename, err := driver.Render(context.Background(), match.Record{HomeTeam: "Arsenal", AwayTeam: "Chelsea"}, "classic")
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if filename != "Match_Arsenal_vs_Chelsea.png" {
		t.Fatalf("unexpected filename %q", filename)
	}
	if got := stub.RenderOrder(); len(got) != 1 || got[0] != "Arsenal vs Chelsea" {
		t.Fatalf("unexpected render order %v", got)
	}

	snapshot := events.Snapshot()
	if len(snapshot) != 1 {
		t.Fatalf("expected 1 event, got %d", len(snapshot))
	}
	if snapshot[0].Severity != eventlog.SeveritySuccess {
		t.Fatalf("expected success event, got %v", snapshot[0].Severity)
	}
	if !strings.Contains(snapshot[0].Message, "Arsenal vs Chelsea") || !strings.Contains(snapshot[0].Message, filename) {
		t.Fatalf("success event missing matchup or filename: %q", snapshot[0].Message)
	}
}

func TestRenderBackendFailureLogsBackendMessage(t *testing.T) {
	driver, stub, events := newDriver(t)
	stub.FailRender("Arsenal vs Chelsea", "badge asset missing")

	_, err := driver.Render(context.Background(), match.Record{HomeTeam: "Arsenal", AwayTeam: "Chelsea"}, "classic")
	if err == nil {
		t.Fatal("expected render error")
	}

	snapshot := events.Snapshot()
	if len(snapshot) != 1 || snapshot[0].Severity != eventlog.SeverityError {
		t.Fatalf("expected 1 error event, got %v", snapshot)
	}
	if !strings.Contains(snapshot[0].Message, "badge asset missing") {
		t.Fatalf("expected backend message in event, got %q", snapshot[0].Message)
	}
	if strings.Contains(snapshot[0].Message, "connection") {
		t.Fatalf("backend refusal must not read as a connection loss: %q", snapshot[0].Message)
	}
}

func TestRenderTransportFailureLogsConnectionLost(t *testing.T) {
	driver, stub, events := newDriver(t)
	stub.DropRender("Arsenal vs Chelsea")

	_, err := driver.Render(context.Background(), match.Record{HomeTeam: "Arsenal", AwayTeam: "Chelsea"}, "classic")
	if err == nil {
		t.Fatal("expected render error")
	}

	snapshot := events.Snapshot()
	if len(snapshot) != 1 || snapshot[0].Severity != eventlog.SeverityError {
		t.Fatalf("expected 1 error event, got %v", snapshot)
	}
	if !strings.Contains(snapshot[0].Message, "connection to render backend lost") {
		t.Fatalf("expected connection-lost event, got %q", snapshot[0].Message)
	}
}
