package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"matchframe/internal/batch"
	"matchframe/internal/config"
	"matchframe/internal/eventlog"
	"matchframe/internal/fixture"
	"matchframe/internal/logging"
	"matchframe/internal/services"
	"matchframe/internal/services/studio"
)

// Server exposes the orchestrator to the dashboard over HTTP.
type Server struct {
	bind   string
	token  string
	logger *slog.Logger
	orch   *batch.Orchestrator
	events *eventlog.Log
	studio studio.API

	listener net.Listener
	server   *http.Server
}

// NewServer wires the HTTP surface. The bearer token is optional; when empty
// all requests are accepted.
func NewServer(cfg *config.Config, orch *batch.Orchestrator, events *eventlog.Log, api studio.API, logger *slog.Logger) *Server {
	if logger == nil {
		logger = logging.NewNop()
	}
	srv := &Server{
		bind:   strings.TrimSpace(cfg.Paths.APIBind),
		token:  strings.TrimSpace(cfg.Paths.APIToken),
		logger: logging.NewComponentLogger(logger, "api-server"),
		orch:   orch,
		events: events,
		studio: api,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/status", srv.requireAuth(srv.handleStatus))
	mux.HandleFunc("/api/log", srv.requireAuth(srv.handleLog))
	mux.HandleFunc("/api/assets", srv.requireAuth(srv.handleAssets))
	mux.HandleFunc("/api/assets/", srv.requireAuth(srv.handleAsset))
	mux.HandleFunc("/api/fixtures", srv.requireAuth(srv.handleFixtures))
	mux.HandleFunc("/api/batch", srv.requireAuth(srv.handleBatch))

	srv.server = &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return srv
}

// Start begins serving and shuts down when ctx is cancelled.
func (s *Server) Start(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.bind)
	if err != nil {
		return fmt.Errorf("api listen: %w", err)
	}
	s.listener = listener

	go func() {
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("api server error", logging.Error(err))
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.server.Shutdown(shutdownCtx)
	}()

	s.logger.Info("api server listening", logging.String("address", listener.Addr().String()))
	return nil
}

// Stop shuts the server down.
func (s *Server) Stop() {
	if s.server != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.server.Shutdown(shutdownCtx)
	}
	if s.listener != nil {
		_ = s.listener.Close()
		s.listener = nil
	}
}

// Addr returns the bound address, useful when listening on port 0.
func (s *Server) Addr() string {
	if s.listener == nil {
		return s.bind
	}
	return s.listener.Addr().String()
}

func (s *Server) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.token != "" {
			header := r.Header.Get("Authorization")
			if header != "Bearer "+s.token {
				s.writeError(w, http.StatusUnauthorized, "invalid or missing bearer token")
				return
			}
		}
		r = r.WithContext(services.WithRequestID(r.Context(), uuid.NewString()))
		next(w, r)
	}
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	s.writeJSON(w, http.StatusOK, FromSnapshot(s.orch.Snapshot(), s.orch.Listing()))
}

func (s *Server) handleLog(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	s.writeJSON(w, http.StatusOK, LogResponse{Events: s.events.Snapshot()})
}

func (s *Server) handleAssets(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	refresh := r.URL.Query().Get("refresh")
	if refresh == "1" || strings.EqualFold(refresh, "true") {
		if err := s.orch.RefreshAssets(r.Context()); err != nil {
			s.writeServiceError(w, err)
			return
		}
	}
	listing := s.orch.Listing()
	resp := AssetsResponse{Files: listing.Filenames()}
	if captured := listing.CapturedAt(); !captured.IsZero() {
		resp.CapturedAt = &captured
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAsset(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	name := strings.TrimPrefix(r.URL.Path, "/api/assets/")
	if unescaped, err := url.PathUnescape(name); err == nil {
		name = unescaped
	}
	if name == "" || strings.Contains(name, "/") {
		s.writeError(w, http.StatusNotFound, "asset not found")
		return
	}
	if err := s.studio.DeleteAsset(r.Context(), name); err != nil {
		s.writeServiceError(w, err)
		return
	}
	if err := s.orch.RefreshAssets(r.Context()); err != nil {
		s.logger.Warn("asset listing refresh failed", logging.Error(err))
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"deleted": name})
}

func (s *Server) handleFixtures(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	fixtures, err := s.studio.ListFixtures(r.Context())
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, FixturesResponse{
		Fixtures: fixtures,
		Text:     fixture.FormatFixtures(fixtures),
	})
}

func (s *Server) handleBatch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var req BatchRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, 1<<20)).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		s.writeError(w, http.StatusBadRequest, "text must not be empty")
		return
	}

	// The run outlives the HTTP request; the dashboard polls /api/status.
	err := s.orch.Start(context.Background(), req.Text, req.TemplateID, func(err error) {
		if err != nil {
			s.logger.Error("batch run failed", logging.Error(err))
		}
	})
	if errors.Is(err, batch.ErrBusy) {
		s.writeError(w, http.StatusConflict, batch.ErrBusy.Error())
		return
	}
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, http.StatusAccepted, BatchResponse{Accepted: true})
}

// writeServiceError maps sentinel-tagged studio errors onto HTTP statuses.
func (s *Server) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrValidation):
		s.writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrNotFound):
		s.writeError(w, http.StatusNotFound, err.Error())
	case services.IsTransport(err):
		s.writeError(w, http.StatusBadGateway, err.Error())
	default:
		s.writeError(w, http.StatusBadGateway, err.Error())
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("failed to encode response", logging.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"error": message})
}
