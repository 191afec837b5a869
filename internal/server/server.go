// Package server exposes the bitmap pipeline over HTTP.
//
// Routes:
//
//	GET  /healthz          liveness probe
//	GET  /v1/transforms    available ops in menu order
//	POST /v1/info          header of the BMP request body
//	POST /v1/transform     apply ?op=... to the BMP request body
//
// Every response carries an X-Request-ID. Errors are JSON objects with a
// code and a message.
package server

import (
	"context"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/matzehuels/bmpedit/pkg/observability"
	"github.com/matzehuels/bmpedit/pkg/pipeline"
)

// DefaultMaxBodyBytes limits request bodies when Config leaves it unset.
const DefaultMaxBodyBytes = 64 << 20

// Config configures a Server.
type Config struct {
	Addr         string
	MaxBodyBytes int64

	// Compat is the default for requests that omit ?compat.
	Compat bool
}

// Server serves the HTTP API.
type Server struct {
	runner *pipeline.Runner
	logger *log.Logger
	cfg    Config
}

// New creates a server backed by runner.
func New(runner *pipeline.Runner, logger *log.Logger, cfg Config) *Server {
	if logger == nil {
		logger = log.Default()
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = DefaultMaxBodyBytes
	}
	return &Server{runner: runner, logger: logger, cfg: cfg}
}

// Handler returns the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(observe)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/transforms", s.handleTransforms)
		r.Post("/info", s.handleInfo)
		r.Post("/transform", s.handleTransform)
	})
	return r
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.cfg.Addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; err != nil && !stderrors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

type ctxKey struct{}

// RequestIDFromContext returns the id assigned by the request id middleware.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, id)))
	})
}

func observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hooks := observability.HTTP()
		hooks.OnRequest(r.Context(), r.Method, r.URL.Path)
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		hooks.OnResponse(r.Context(), r.Method, r.URL.Path, status, time.Since(start))
	})
}
