// Package api exposes the HTTP control surface for the scheduler service.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/scrapingbeasiswa/beasiswa-scheduler/internal/beasiswa"
	"github.com/scrapingbeasiswa/beasiswa-scheduler/internal/scheduler"
)

// Controller is the slice of the run controller the HTTP layer needs.
type Controller interface {
	Start() (beasiswa.Status, bool)
	Stop() beasiswa.Status
	Reset() beasiswa.Status
	Status() beasiswa.Status
	LogMessages() []string
	TryExecute() error
}

// Server wires HTTP handlers to the run controller and the storage backend.
// Handlers only map requests to controller calls and render JSON; no
// business logic lives here.
type Server struct {
	router     chi.Router
	controller Controller
	store      beasiswa.Store
	clock      beasiswa.Clock
	logger     *zap.Logger
}

// NewServer constructs a Server with middleware and routes.
func NewServer(controller Controller, store beasiswa.Store, clock beasiswa.Clock, logger *zap.Logger) *Server {
	s := &Server{
		controller: controller,
		store:      store,
		clock:      clock,
		logger:     logger,
	}
	r := chi.NewRouter()
	r.Use(requestIDMiddleware)
	r.Use(loggingMiddleware(logger))
	r.Use(recoverMiddleware(logger))

	r.Get("/health", s.health)
	r.Get("/status", s.status)
	r.Get("/logs", s.logs)
	r.Post("/start", s.start)
	r.Post("/stop", s.stop)
	r.Post("/execute", s.execute)
	r.Post("/reset", s.reset)
	r.Get("/beasiswa", s.beasiswa)
	r.Handle("/metrics", promhttp.Handler())
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "Endpoint not found", "")
	})

	s.router = r
	return s
}

// Handler returns the router for use with http.Server.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "healthy",
		"timestamp": s.clock.Now().Format(time.RFC3339),
		"service":   "scheduler-service",
		"scheduler": s.controller.Status(),
	})
}

func (s *Server) status(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.controller.Status())
}

func (s *Server) logs(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"logs": s.controller.LogMessages()})
}

func (s *Server) start(w http.ResponseWriter, _ *http.Request) {
	status, started := s.controller.Start()
	if !started {
		writeJSON(w, http.StatusOK, map[string]any{"message": "Scheduler is already running"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message":    "Scheduler started successfully",
		"nextUpdate": status.NextUpdate,
	})
}

func (s *Server) stop(w http.ResponseWriter, _ *http.Request) {
	s.controller.Stop()
	writeJSON(w, http.StatusOK, map[string]any{"message": "Scheduler stopped successfully"})
}

func (s *Server) execute(w http.ResponseWriter, _ *http.Request) {
	if err := s.controller.TryExecute(); err != nil {
		if errors.Is(err, scheduler.ErrAlreadyUpdating) {
			writeError(w, http.StatusBadRequest,
				"Scraping already in progress",
				"Please wait for current scraping to complete")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to execute manual scraping", err.Error())
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]any{"message": "Manual execution started successfully"})
}

func (s *Server) reset(w http.ResponseWriter, _ *http.Request) {
	s.controller.Reset()
	writeJSON(w, http.StatusOK, map[string]any{"message": "Scheduler state reset successfully"})
}

// beasiswa proxies the storage backend's data payload, passing through the
// optional kategori filter.
func (s *Server) beasiswa(w http.ResponseWriter, r *http.Request) {
	payload, err := s.store.ListScholarships(r.Context(), r.URL.Query().Get("kategori"))
	if err != nil {
		s.logger.Error("failed to fetch beasiswa data", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to fetch beasiswa data", err.Error())
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(payload); err != nil {
		s.logger.Error("write beasiswa payload failed", zap.Error(err))
	}
}

type requestIDKey struct{}

func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := uuid.NewString()
		ctx := context.WithValue(r.Context(), requestIDKey{}, reqID)
		w.Header().Set("X-Request-ID", reqID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func loggingMiddleware(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := &responseWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(ww, r)
			logger.Info("request completed",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.status),
				zap.Int64("duration_ms", time.Since(start).Milliseconds()),
			)
		})
	}
}

func recoverMiddleware(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					logger.Error("panic recovered", zap.Any("error", rec))
					writeError(w, http.StatusInternalServerError, "internal server error", "")
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

type responseWriter struct {
	http.ResponseWriter
	status int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		zap.L().Error("write JSON failed", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, status int, errMsg, detail string) {
	body := map[string]string{"error": errMsg}
	if detail != "" {
		body["message"] = detail
	}
	writeJSON(w, status, body)
}
