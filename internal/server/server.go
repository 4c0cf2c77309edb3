// ABOUTME: HTTP server wiring for the Apo memory service
// ABOUTME: Routes, request logging middleware, lifecycle and graceful shutdown

package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/sameyume-creator/Apo/internal/config"
	"github.com/sameyume-creator/Apo/internal/store"
)

// Server serves the memory store's HTTP surface. The whole surface is
// GET-only: writes arrive as image loads and reads leave as documents
// that push data to their embedding page, because the calling context
// is a sandboxed iframe with no fetch privileges.
type Server struct {
	config     *config.Config
	store      store.Store
	logger     *slog.Logger
	httpServer *http.Server
}

// New creates a Server around an injected store handle.
func New(cfg *config.Config, st store.Store) *Server {
	s := &Server{
		config: cfg,
		store:  st,
		logger: slog.Default().With("component", "server"),
	}

	mux := http.NewServeMux()

	// Write gateway - invoked as an image-load side effect
	mux.HandleFunc("GET /save", s.handleSave)

	// Read bridge - push variant (nested frame) and callback variant (script tag)
	mux.HandleFunc("GET /bridge", s.handleBridge)
	mux.HandleFunc("GET /bridge.js", s.handleBridgeJS)

	// Admin surface
	mux.HandleFunc("GET /manager", s.handleManager)
	mux.HandleFunc("GET /delete_action", s.handleDeleteAction)

	mux.HandleFunc("GET /health", s.handleHealth)

	s.httpServer = &http.Server{
		Addr:              cfg.Server.HTTPAddr,
		Handler:           s.withRequestLog(mux),
		ReadHeaderTimeout: 10 * time.Second,
	}

	return s
}

// Handler exposes the routed handler for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Run starts the HTTP server and blocks until the context is canceled or
// the server fails. Returns nil on graceful shutdown.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		s.logger.Info("HTTP server listening", "addr", s.config.Server.HTTPAddr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		return s.gracefulShutdown()
	case err := <-errCh:
		return err
	}
}

// gracefulShutdown stops the server with a fresh context and timeout.
// Uses context.Background() intentionally since the run context is
// already canceled.
func (s *Server) gracefulShutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	s.logger.Info("shutting down HTTP server")
	return s.httpServer.Shutdown(ctx)
}

// withRequestLog attaches a request ID and logs each request.
func (s *Server) withRequestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := uuid.New().String()

		next.ServeHTTP(w, r)

		s.logger.Debug("request handled",
			"request_id", requestID,
			"method", r.Method,
			"path", r.URL.Path,
			"duration", time.Since(start),
		)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

// allowFraming marks a response as embeddable from any origin. The
// embedding page's origin is outside this system's control, so no
// frame-ancestors restriction is possible.
func allowFraming(w http.ResponseWriter) {
	w.Header().Set("Content-Security-Policy", "frame-ancestors *")
}

// scopeFromQuery rebuilds the scope triple from the request's query
// parameters. Parameter names (u, c, pw) are the wire contract.
func scopeFromQuery(r *http.Request) store.Scope {
	q := r.URL.Query()
	return store.Scope{
		OwnerID:   q.Get("u"),
		SubjectID: q.Get("c"),
		Secret:    q.Get("pw"),
	}
}

// recentLimit returns the configured per-scope retrieval cap.
func (s *Server) recentLimit() int {
	if s.config.Memory.RecentLimit > 0 {
		return s.config.Memory.RecentLimit
	}
	return store.DefaultRecentLimit
}
