// Package httpapi serves the blog REST API over net/http.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/bloglist/internal/logging"
	"github.com/dmitrijs2005/bloglist/internal/server/reports"
	"github.com/dmitrijs2005/bloglist/internal/server/services"
)

// Archiver stores stats snapshots (reports.Archiver).
type Archiver interface {
	Store(ctx context.Context, snap reports.Snapshot) (*reports.Archive, error)
}

type Server struct {
	address         string
	logger          logging.Logger
	users           *services.UserService
	posts           *services.PostService
	archiver        Archiver
	shutdownTimeout time.Duration
}

// NewServer returns an HTTP API server. A nil archiver disables
// POST /api/stats/archive.
func NewServer(address string, l logging.Logger, us *services.UserService, ps *services.PostService, archiver Archiver, shutdownTimeout time.Duration) *Server {
	return &Server{
		address:         address,
		logger:          l.With("module", "http_server"),
		users:           us,
		posts:           ps,
		archiver:        archiver,
		shutdownTimeout: shutdownTimeout,
	}
}

// Handler returns the routed handler with logging and panic recovery.
// Every API route is served both under /api and at the root.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	for _, prefix := range []string{"/api", ""} {
		mux.HandleFunc("GET "+prefix+"/posts", s.listPosts)
		mux.HandleFunc("POST "+prefix+"/posts", s.createPost)
		mux.HandleFunc("GET "+prefix+"/posts/{id}", s.getPost)
		mux.HandleFunc("PUT "+prefix+"/posts/{id}", s.updatePost)
		mux.HandleFunc("DELETE "+prefix+"/posts/{id}", s.deletePost)

		mux.HandleFunc("GET "+prefix+"/users", s.listUsers)
		mux.HandleFunc("POST "+prefix+"/users", s.createUser)
		mux.HandleFunc("POST "+prefix+"/login", s.login)

		mux.HandleFunc("GET "+prefix+"/stats", s.getStats)
		mux.HandleFunc("POST "+prefix+"/stats/archive", s.archiveStats)
	}
	mux.HandleFunc("GET /healthz", s.healthz)

	return Chain(mux, RecoverPanic(s.logger), LogRequests(s.logger))
}

// Run serves until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.address,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		s.logger.Info(ctx, "Starting HTTP server", "address", s.address)
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info(ctx, "Stopping HTTP server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-serveErr; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
