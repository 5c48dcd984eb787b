package api

import (
	"time"

	"matchframe/internal/assets"
	"matchframe/internal/batch"
	"matchframe/internal/eventlog"
	"matchframe/internal/match"
)

// MatchView is one row of the dashboard status table. AssetExists reports
// whether the last captured listing already holds an output for the matchup,
// regardless of this run's status.
type MatchView struct {
	Index       int          `json:"index"`
	Matchup     string       `json:"matchup"`
	Status      batch.Status `json:"status"`
	AssetExists bool         `json:"assetExists"`
}

// StatusResponse mirrors the orchestrator snapshot for dashboard polling.
type StatusResponse struct {
	State     batch.RunState `json:"state"`
	Busy      bool           `json:"busy"`
	BatchID   string         `json:"batchId,omitempty"`
	Matches   []MatchView    `json:"matches"`
	Rendered  int            `json:"rendered"`
	Failed    int            `json:"failed"`
	StartedAt *time.Time     `json:"startedAt,omitempty"`
}

// LogResponse carries the bounded event log, oldest first.
type LogResponse struct {
	Events []eventlog.Event `json:"events"`
}

// AssetsResponse carries the remote asset listing.
type AssetsResponse struct {
	Files      []string   `json:"files"`
	CapturedAt *time.Time `json:"capturedAt,omitempty"`
}

// FixturesResponse carries backend fixtures plus the same matchups formatted
// as parser-ready input lines.
type FixturesResponse struct {
	Fixtures []match.Fixture `json:"fixtures"`
	Text     string          `json:"text"`
}

// BatchRequest starts a run from raw operator text.
type BatchRequest struct {
	Text       string `json:"text"`
	TemplateID string `json:"templateId,omitempty"`
}

// BatchResponse acknowledges an accepted run.
type BatchResponse struct {
	Accepted bool `json:"accepted"`
}

// FromSnapshot converts an orchestrator snapshot into the wire view, marking
// each matchup against the asset listing.
func FromSnapshot(s batch.Snapshot, listing assets.Listing) StatusResponse {
	matches := make([]MatchView, 0, len(s.Records))
	for i, rec := range s.Records {
		status := batch.StatusIdle
		if i < len(s.Statuses) {
			status = s.Statuses[i]
		}
		matches = append(matches, MatchView{
			Index:       i,
			Matchup:     rec.Matchup(),
			Status:      status,
			AssetExists: listing.IsRenderedRecord(rec),
		})
	}
	resp := StatusResponse{
		State:    s.State,
		Busy:     s.Busy,
		BatchID:  s.BatchID,
		Matches:  matches,
		Rendered: s.Rendered,
		Failed:   s.Failed,
	}
	if !s.StartedAt.IsZero() {
		started := s.StartedAt
		resp.StartedAt = &started
	}
	return resp
}
