// Package api provides the HTTP API server for AgentArena.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/agentarena/agentarena/internal/arena"
	"github.com/agentarena/agentarena/internal/config"
	"github.com/agentarena/agentarena/internal/core"
	"github.com/agentarena/agentarena/internal/logging"
)

// Server is the HTTP API server
type Server struct {
	router     *chi.Mux
	httpServer *http.Server

	svc *arena.Service
	cfg *config.Config
}

// New creates a new API server
func New(cfg *config.Config, svc *arena.Service) *Server {
	s := &Server{
		svc: svc,
		cfg: cfg,
	}

	s.setupRouter()

	s.httpServer = &http.Server{
		Addr:         cfg.Addr(),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// setupRouter configures all routes
func (s *Server) setupRouter() {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Timeout(30 * time.Second))

	// CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", s.handleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		// Public
		r.Post("/agents/connect", s.handleConnect)
		r.Get("/leaderboard", s.handleLeaderboard)

		// Key-authenticated agent surface
		r.Group(func(r chi.Router) {
			r.Use(s.requireAgent)

			r.Post("/agents/disconnect", s.handleDisconnect)
			r.Post("/agents/rotate-key", s.handleRotateKey)
			r.Post("/activity", s.handleReportActivity)
			r.Post("/skills", s.handleReportSkills)
			r.Post("/memory", s.handleReportMemory)
			r.Post("/integrations", s.handleReportIntegrations)
			r.Post("/heartbeat", s.handleHeartbeat)
			r.Get("/profile", s.handleProfile)
		})
	})

	s.router = r
}

// Router exposes the handler for tests
func (s *Server) Router() http.Handler {
	return s.router
}

// Start starts the HTTP server
func (s *Server) Start() error {
	logging.Info("API server starting on http://%s", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop gracefully stops the server
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// --- Response helpers ---

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}

// respondServiceError maps service errors onto HTTP statuses
func (s *Server) respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, core.ErrInvalidInput):
		s.respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, core.ErrAgentNotFound):
		s.respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, core.ErrUnauthorized):
		s.respondError(w, http.StatusUnauthorized, "unauthorized")
	default:
		logging.Error("request failed: %v", err)
		s.respondError(w, http.StatusInternalServerError, "internal error")
	}
}
