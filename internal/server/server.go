// Package server exposes the current snapshot, its entity states and a
// manual refresh endpoint over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/pfrederiksen/seattle-home-game/internal/calendar"
	"github.com/pfrederiksen/seattle-home-game/internal/coordinator"
	"github.com/pfrederiksen/seattle-home-game/internal/entity"
	"github.com/pfrederiksen/seattle-home-game/internal/event"
	"github.com/pfrederiksen/seattle-home-game/internal/logger"
)

// Controller is the part of the poll coordinator the server needs.
type Controller interface {
	Snapshot() *event.Snapshot
	LastError() error
	Toggle() bool
	TurnOn(ctx context.Context) (*event.Snapshot, error)
}

// Server serves the HTTP API.
type Server struct {
	ctrl     Controller
	registry entity.Registry
	mux      *http.ServeMux
	http     *http.Server
	now      func() time.Time
}

type errorResponse struct {
	Error string `json:"error"`
}

type healthResponse struct {
	Status      string `json:"status"`
	HasSnapshot bool   `json:"has_snapshot"`
	Refreshing  bool   `json:"refreshing"`
	LastError   string `json:"last_error,omitempty"`
}

// New creates a server listening on addr. metrics may be nil.
func New(addr string, ctrl Controller, registry entity.Registry, metrics http.Handler) *Server {
	s := &Server{
		ctrl:     ctrl,
		registry: registry,
		mux:      http.NewServeMux(),
		now:      time.Now,
	}

	s.mux.HandleFunc("GET /healthz", s.handleHealth)
	s.mux.HandleFunc("GET /api/snapshot", s.handleSnapshot)
	s.mux.HandleFunc("GET /api/entities", s.handleEntities)
	s.mux.HandleFunc("POST /api/refresh", s.handleRefresh)
	s.mux.HandleFunc("GET /calendar.ics", s.handleCalendar)
	if metrics != nil {
		s.mux.Handle("GET /metrics", metrics)
	}

	s.http = &http.Server{
		Addr:              addr,
		Handler:           s.mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler returns the router, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting HTTP server", logger.Fields{"addr": s.http.Addr})
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.http.Shutdown(shutdownCtx); err != nil {
		return err
	}
	logger.Info("HTTP server stopped", nil)
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{
		Status:      "ok",
		HasSnapshot: s.ctrl.Snapshot() != nil,
		Refreshing:  s.ctrl.Toggle(),
	}
	if err := s.ctrl.LastError(); err != nil {
		resp.Status = "degraded"
		resp.LastError = err.Error()
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.current(w)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (s *Server) handleEntities(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.current(w)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.registry.Build(snap, s.ctrl.Toggle()))
}

// handleRefresh answers 502 only when this refresh's own fetch failed
func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	snap, err := s.ctrl.TurnOn(r.Context())
	switch {
	case err == nil:
	case errors.Is(err, coordinator.ErrPublish):
		logger.Warn("Manual refresh published with errors", logger.Fields{"error": err.Error()})
	default:
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (s *Server) handleCalendar(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.current(w)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `inline; filename="seattle-home-games.ics"`)
	_, _ = w.Write([]byte(calendar.GenerateICS(snap, s.now())))
}

// current writes 503 and returns false until the first successful poll
func (s *Server) current(w http.ResponseWriter) (*event.Snapshot, bool) {
	snap := s.ctrl.Snapshot()
	if snap == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "no snapshot available yet"})
		return nil, false
	}
	return snap, true
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Warn("Failed to encode response", logger.Fields{"error": err.Error()})
	}
}
