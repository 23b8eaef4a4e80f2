// Package server is the HTTP side of watch mode: metrics, health and the
// result of the most recent organize pass.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/joseph-ayodele/docsorter/internal/filing"
)

// Pinger reports backing store health.
type Pinger interface {
	HealthCheck(ctx context.Context) error
}

type Server struct {
	addr    string
	router  *chi.Mux
	health  Pinger
	logger  *slog.Logger
	mu      sync.RWMutex
	running bool
	last    *passStatus
}

type passStatus struct {
	Summary  filing.Summary `json:"summary"`
	Finished time.Time      `json:"finished"`
}

// New builds the router. metrics may be nil, health may be nil.
func New(addr string, metrics http.Handler, health Pinger, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{addr: addr, health: health, logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Get("/healthz", s.handleHealth)
	r.Get("/status", s.handleStatus)
	if metrics != nil {
		r.Handle("/metrics", metrics)
	}
	s.router = r
	return s
}

func (s *Server) Handler() http.Handler { return s.router }

// PassStarted and PassFinished track the organize pass shown by /status.
func (s *Server) PassStarted() {
	s.mu.Lock()
	s.running = true
	s.mu.Unlock()
}

func (s *Server) PassFinished(sum filing.Summary) {
	s.mu.Lock()
	s.running = false
	s.last = &passStatus{Summary: sum, Finished: time.Now().UTC()}
	s.mu.Unlock()
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", "addr", s.addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.logger.Info("http server shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.health != nil {
		if err := s.health.HealthCheck(r.Context()); err != nil {
			s.logger.Warn("health check failed", "error", err)
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unhealthy", "error": err.Error()})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleStatus(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	writeJSON(w, http.StatusOK, struct {
		Running bool        `json:"running"`
		Last    *passStatus `json:"last,omitempty"`
	}{s.running, s.last})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
