// Package server provides the HTTP API for talentview.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/clearhire/talentview/internal/auth"
	"github.com/clearhire/talentview/internal/config"
	"github.com/clearhire/talentview/internal/store"
)

// Server is the HTTP server for the talentview API.
type Server struct {
	store  store.Store
	auth   *auth.Service
	config *config.ServerConfig
	logger *zap.Logger
	now    func() time.Time
	server *http.Server
}

// NewServer creates a server with the given dependencies.
func NewServer(st store.Store, authSvc *auth.Service, cfg *config.ServerConfig, logger *zap.Logger) *Server {
	return &Server{
		store:  st,
		auth:   authSvc,
		config: cfg,
		logger: logger,
		now:    time.Now,
	}
}

// Router assembles the chi router: a public login endpoint plus the
// bearer-guarded API routes.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/health", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/login", s.handleLogin)

		r.Group(func(r chi.Router) {
			r.Use(s.auth.Middleware)

			r.Route("/interviews", func(r chi.Router) {
				r.Get("/", s.handleListInterviews)
				r.Post("/", s.handleCreateInterview)
				r.Get("/{id}", s.handleGetInterview)
				r.Put("/{id}", s.handleUpdateInterview)
				r.Delete("/{id}", s.handleDeleteInterview)
			})

			r.Route("/templates", func(r chi.Router) {
				r.Get("/", s.handleListTemplates)
				r.Post("/", s.handleCreateTemplate)
				r.Get("/{id}", s.handleGetTemplate)
				r.Put("/{id}", s.handleUpdateTemplate)
				r.Delete("/{id}", s.handleDeleteTemplate)
			})

			r.Get("/positions", s.handleListPositions)
			r.Get("/dashboard", s.handleDashboard)
		})
	})

	return r
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	s.server = &http.Server{
		Addr:    addr,
		Handler: s.Router(),
	}
	s.logger.Info("Starting server", zap.String("addr", addr))
	return s.server.ListenAndServe()
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
