package testsupport

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"matchframe/internal/assets"
	"matchframe/internal/match"
)

// StudioStub is an in-process fake of the studio render backend. It answers
// the optimize, render, assets and fixtures endpoints and records the order
// render jobs arrive in.
type StudioStub struct {
	server *httptest.Server

	mu            sync.Mutex
	assets        []string
	fixtures      []match.Fixture
	submitFailure string
	renderFails   map[string]string
	renderDrops   map[string]bool
	renderHolds   map[string]chan struct{}
	renderOrder   []string
	submitCalls   int
}

// NewStudioStub starts a stub backend and registers its shutdown with the
// test cleanup list.
func NewStudioStub(t testing.TB) *StudioStub {
	t.Helper()
	stub := &StudioStub{
		renderFails: make(map[string]string),
		renderDrops: make(map[string]bool),
		renderHolds: make(map[string]chan struct{}),
	}
	stub.server = httptest.NewServer(http.HandlerFunc(stub.handle))
	t.Cleanup(stub.server.Close)
	return stub
}

// URL returns the stub's base URL for client configuration.
func (s *StudioStub) URL() string { return s.server.URL }

// SetAssets replaces the remote asset listing.
func (s *StudioStub) SetAssets(names ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.assets = append([]string(nil), names...)
}

// SetFixtures replaces the fixture listing.
func (s *StudioStub) SetFixtures(fixtures ...match.Fixture) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fixtures = append([]match.Fixture(nil), fixtures...)
}

// FailSubmit makes the next batch submissions report a logical failure.
func (s *StudioStub) FailSubmit(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.submitFailure = message
}

// FailRender makes render jobs for the given matchup report a logical
// failure with the given message.
func (s *StudioStub) FailRender(matchup, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.renderFails[matchup] = message
}

// DropRender makes render jobs for the given matchup fail at the connection
// level, simulating a lost backend.
func (s *StudioStub) DropRender(matchup string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.renderDrops[matchup] = true
}

// HoldRender makes render jobs for the given matchup block until the
// returned release function is called. Release is safe to call twice; tests
// should defer it so a shut-down server never waits on a blocked handler.
func (s *StudioStub) HoldRender(matchup string) (release func()) {
	gate := make(chan struct{})
	s.mu.Lock()
	s.renderHolds[matchup] = gate
	s.mu.Unlock()

	var once sync.Once
	return func() { once.Do(func() { close(gate) }) }
}

// RenderOrder returns the matchups render jobs arrived with, in order.
func (s *StudioStub) RenderOrder() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.renderOrder...)
}

// Assets returns the current remote asset listing.
func (s *StudioStub) Assets() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.assets...)
}

// SubmitCalls reports how many batch submissions arrived.
func (s *StudioStub) SubmitCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.submitCalls
}

func (s *StudioStub) handle(w http.ResponseWriter, r *http.Request) {
	switch {
	case r.Method == http.MethodPost && r.URL.Path == "/api/v1/optimize":
		s.handleOptimize(w, r)
	case r.Method == http.MethodPost && r.URL.Path == "/api/v1/render":
		s.handleRender(w, r)
	case r.Method == http.MethodGet && r.URL.Path == "/api/v1/assets":
		s.handleAssets(w)
	case r.Method == http.MethodDelete && strings.HasPrefix(r.URL.Path, "/api/v1/assets/"):
		s.handleDeleteAsset(w, r)
	case r.Method == http.MethodGet && r.URL.Path == "/api/v1/fixtures":
		s.handleFixtures(w)
	default:
		http.NotFound(w, r)
	}
}

func (s *StudioStub) handleOptimize(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Matches []match.Intent `json:"matches"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	s.submitCalls++
	failure := s.submitFailure
	s.mu.Unlock()

	if failure != "" {
		writeJSON(w, map[string]any{"status": "error", "message": failure})
		return
	}

	records := make([]match.Record, 0, len(req.Matches))
	for _, intent := range req.Matches {
		records = append(records, match.Record{
			HomeTeam:      intent.HomeTeam,
			AwayTeam:      intent.AwayTeam,
			Odds:          intent.Odds,
			ManualKickoff: intent.ManualKickoff,
		})
	}
	writeJSON(w, map[string]any{"status": "success", "results": records})
}

func (s *StudioStub) handleRender(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Match match.Record `json:"match"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	matchup := req.Match.Matchup()

	s.mu.Lock()
	drop := s.renderDrops[matchup]
	failure := s.renderFails[matchup]
	gate := s.renderHolds[matchup]
	if !drop {
		s.renderOrder = append(s.renderOrder, matchup)
	}
	s.mu.Unlock()

	if gate != nil {
		<-gate
	}

	if drop {
		hj, ok := w.(http.Hijacker)
		if !ok {
			http.Error(w, "hijack unsupported", http.StatusInternalServerError)
			return
		}
		conn, _, err := hj.Hijack()
		if err == nil {
			conn.Close()
		}
		return
	}
	if failure != "" {
		writeJSON(w, map[string]any{"status": "error", "message": failure})
		return
	}

	filename := assets.ExpectedFilename(req.Match.HomeTeam, req.Match.AwayTeam)
	s.mu.Lock()
	s.assets = append(s.assets, filename)
	s.mu.Unlock()
	writeJSON(w, map[string]any{"status": "success", "filename": filename})
}

func (s *StudioStub) handleAssets(w http.ResponseWriter) {
	writeJSON(w, map[string]any{"status": "success", "files": s.Assets()})
}

func (s *StudioStub) handleDeleteAsset(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimPrefix(r.URL.Path, "/api/v1/assets/")
	if unescaped, err := url.PathUnescape(name); err == nil {
		name = unescaped
	}
	s.mu.Lock()
	found := false
	kept := s.assets[:0]
	for _, existing := range s.assets {
		if existing == name {
			found = true
			continue
		}
		kept = append(kept, existing)
	}
	s.assets = kept
	s.mu.Unlock()

	if !found {
		writeJSON(w, map[string]any{"status": "error", "message": "asset not found"})
		return
	}
	writeJSON(w, map[string]any{"status": "success"})
}

func (s *StudioStub) handleFixtures(w http.ResponseWriter) {
	s.mu.Lock()
	fixtures := append([]match.Fixture(nil), s.fixtures...)
	s.mu.Unlock()
	writeJSON(w, map[string]any{"status": "success", "fixtures": fixtures})
}

func writeJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(payload)
}
