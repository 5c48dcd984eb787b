package studio_test

import (
	"context"
	"errors"
	"testing"

	"matchframe/internal/match"
	"matchframe/internal/services"
	"matchframe/internal/services/studio"
	"matchframe/internal/testsupport"
)

func newClient(t *testing.T) (*studio.Client, *testsupport.StudioStub) {
	t.Helper()
	stub := testsupport.NewStudioStub(t)
	cfg := testsupport.NewConfig(t, testsupport.WithStudioURL(stub.URL()))
	return studio.NewClient(cfg), stub
}

func TestSubmitBatchReturnsRecordsInOrder(t *testing.T) {
	client, _ := newClient(t)

	intents := []match.Intent{
		{HomeTeam: "Arsenal", AwayTeam: "Chelsea", Odds: [3]string{"1.85", "3.20", "4.10"}},
		{HomeTeam: "Lyon", AwayTeam: "Nice"},
	}
	records, err := client.SubmitBatch(context.Background(), intents, studio.Flags{BoostOdds: true})
	if err != nil {
		t.Fatalf("SubmitBatch: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].Matchup() != "Arsenal vs Chelsea" || records[1].Matchup() != "Lyon vs Nice" {
		t.Fatalf("unexpected record order: %q, %q", records[0].Matchup(), records[1].Matchup())
	}
	if records[0].Odds != intents[0].Odds {
		t.Fatalf("expected odds to round-trip, got %v", records[0].Odds)
	}
}

func TestSubmitBatchReportsBackendFailure(t *testing.T) {
	client, stub := newClient(t)
	stub.FailSubmit("no valid matches")

	_, err := client.SubmitBatch(context.Background(), []match.Intent{{HomeTeam: "A", AwayTeam: "B"}}, studio.Flags{})
	if !errors.Is(err, services.ErrBackend) {
		t.Fatalf("expected backend error, got %v", err)
	}
}

func TestRenderMatchReturnsFilename(t *testing.T) {
	client, stub := newClient(t)

	rec := match.Record{HomeTeam: "Arsenal", AwayTeam: "Chelsea"}
	result, err := client.RenderMatch(context.Background(), rec, "classic")
	if err != nil {
		t.Fatalf("RenderMatch: %v", err)
	}
	if !result.Succeeded() {
		t.Fatalf("expected success, got status %q", result.Status)
	}
	if result.Filename != "Match_Arsenal_vs_Chelsea.png" {
		t.Fatalf("unexpected filename %q", result.Filename)
	}
	assets := stub.Assets()
	if len(assets) != 1 || assets[0] != result.Filename {
		t.Fatalf("expected rendered asset in listing, got %v", assets)
	}
}

func TestRenderMatchClassifiesBackendFailure(t *testing.T) {
	client, stub := newClient(t)
	stub.FailRender("Arsenal vs Chelsea", "template missing badge slot")

	result, err := client.RenderMatch(context.Background(), match.Record{HomeTeam: "Arsenal", AwayTeam: "Chelsea"}, "classic")
	if !errors.Is(err, services.ErrBackend) {
		t.Fatalf("expected backend error, got %v", err)
	}
	if services.IsTransport(err) {
		t.Fatal("backend refusal must not be classified as transport failure")
	}
	if result.Message != "template missing badge slot" {
		t.Fatalf("expected backend message to survive, got %q", result.Message)
	}
}

func TestRenderMatchClassifiesTransportFailure(t *testing.T) {
	client, stub := newClient(t)
	stub.DropRender("Arsenal vs Chelsea")

	_, err := client.RenderMatch(context.Background(), match.Record{HomeTeam: "Arsenal", AwayTeam: "Chelsea"}, "classic")
	if !services.IsTransport(err) {
		t.Fatalf("expected transport failure, got %v", err)
	}
}

func TestListAndDeleteAssets(t *testing.T) {
	client, stub := newClient(t)
	stub.SetAssets("Match_Arsenal_vs_Chelsea.png", "Match_Lyon_vs_Nice.png")

	files, err := client.ListAssets(context.Background())
	if err != nil {
		t.Fatalf("ListAssets: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("expected 2 assets, got %v", files)
	}

	if err := client.DeleteAsset(context.Background(), "Match_Lyon_vs_Nice.png"); err != nil {
		t.Fatalf("DeleteAsset: %v", err)
	}
	files, err = client.ListAssets(context.Background())
	if err != nil {
		t.Fatalf("ListAssets after delete: %v", err)
	}
	if len(files) != 1 || files[0] != "Match_Arsenal_vs_Chelsea.png" {
		t.Fatalf("unexpected listing after delete: %v", files)
	}
}

func TestDeleteAssetValidatesName(t *testing.T) {
	client, _ := newClient(t)

	if err := client.DeleteAsset(context.Background(), "  "); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if err := client.DeleteAsset(context.Background(), "missing.png"); !errors.Is(err, services.ErrBackend) {
		t.Fatalf("expected backend error for unknown asset, got %v", err)
	}
}

func TestListFixtures(t *testing.T) {
	client, stub := newClient(t)
	stub.SetFixtures(match.Fixture{HomeTeam: "Arsenal", AwayTeam: "Chelsea", Kickoff: "2026-09-12 20:00", Odds: [3]string{"1.85", "3.20", "4.10"}})

	fixtures, err := client.ListFixtures(context.Background())
	if err != nil {
		t.Fatalf("ListFixtures: %v", err)
	}
	if len(fixtures) != 1 || fixtures[0].HomeTeam != "Arsenal" {
		t.Fatalf("unexpected fixtures: %v", fixtures)
	}
}
