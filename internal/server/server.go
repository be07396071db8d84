// Package server exposes the transpiler over HTTP: a JSON API for editor
// and playground clients, plus a server-sent event stream of rebuilds
// when started in watch mode.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/leapstack-labs/bython/internal/engine"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 1 << 20

// Server is the HTTP API server.
type Server struct {
	engine   *engine.Engine
	port     int
	paths    []string
	debounce time.Duration
	logger   *slog.Logger
	notifier *Notifier
}

// Config holds configuration for the server.
type Config struct {
	Port int
	// Engine rebuilds WatchPaths on change; nil disables watching
	Engine     *engine.Engine
	WatchPaths []string
	Debounce   time.Duration
	Logger     *slog.Logger
}

// New creates a server instance.
func New(cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Server{
		engine:   cfg.Engine,
		port:     cfg.Port,
		paths:    cfg.WatchPaths,
		debounce: cfg.Debounce,
		logger:   logger,
		notifier: NewNotifier(),
	}
}

// Notifier returns the server's build event notifier.
func (s *Server) Notifier() *Notifier {
	return s.notifier
}

// Handler returns the routed API.
func (s *Server) Handler() http.Handler {
	r := chi.NewMux()
	r.Use(
		middleware.RequestID,
		s.requestLogger,
		middleware.Recoverer,
		middleware.Compress(5),
	)

	r.Get("/healthz", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Post("/transpile", s.handleTranspile)
		r.Post("/ast", s.handleAST)
		r.Get("/events", s.handleEvents)
	})
	return r
}

// Serve starts the server and blocks until ctx is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	addr := fmt.Sprintf(":%d", s.port)
	s.logger.Info("starting server", "addr", fmt.Sprintf("http://localhost:%d", s.port))

	eg, egctx := errgroup.WithContext(ctx)

	srv := &http.Server{
		Addr:    addr,
		Handler: s.Handler(),
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: 10 * time.Second,
	}

	if s.engine != nil {
		eg.Go(func() error {
			return s.engine.Watch(egctx, s.paths, engine.WatchOptions{
				Debounce: s.debounce,
				OnBuild: func(res *engine.BuildResult, err error) {
					if err != nil {
						s.logger.Error("rebuild failed", "error", err)
					}
					s.notifier.Broadcast(newBuildEvent(res, err))
				},
			})
		})
	}

	eg.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Debug("shutting down server...")
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method, "path", r.URL.Path, "status", ww.Status(),
			"bytes", ww.BytesWritten(), "duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()))
	})
}
