// Package server implements the keyplate HTTP API.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/keyplate/pkg/api"
	"github.com/matzehuels/keyplate/pkg/buildinfo"
	"github.com/matzehuels/keyplate/pkg/cache"
	"github.com/matzehuels/keyplate/pkg/errors"
	"github.com/matzehuels/keyplate/pkg/httputil"
	"github.com/matzehuels/keyplate/pkg/observability"
	"github.com/matzehuels/keyplate/pkg/pipeline"
	"github.com/matzehuels/keyplate/pkg/plate/sink"
)

const (
	// DefaultAddr is the listen address used when none is configured.
	DefaultAddr = ":8080"

	// DefaultBuildTimeout bounds a single build request.
	DefaultBuildTimeout = 2 * time.Minute

	// maxBodyBytes leaves room for JSON escaping around the largest layout.
	maxBodyBytes = 2 * errors.MaxLayoutBytes
)

// Server serves the plate API.
type Server struct {
	runner  *pipeline.Runner
	logger  *log.Logger
	backend string
	timeout time.Duration
}

// Option configures a Server.
type Option func(*Server)

// WithBuildTimeout overrides [DefaultBuildTimeout].
func WithBuildTimeout(d time.Duration) Option { return func(s *Server) { s.timeout = d } }

// WithBackendName sets the cache backend name reported by /healthz.
func WithBackendName(name string) Option { return func(s *Server) { s.backend = name } }

// New creates a server that builds with runner. Keys are scoped with an
// "api:" prefix so a shared backend never mixes server and CLI entries.
func New(runner *pipeline.Runner, logger *log.Logger, opts ...Option) *Server {
	if logger == nil {
		logger = runner.Logger
	}
	s := &Server{
		runner: &pipeline.Runner{
			Cache:  runner.Cache,
			Keyer:  cache.NewScopedKeyer(runner.Keyer, "api:"),
			Logger: runner.Logger,
		},
		logger:  logger,
		backend: "none",
		timeout: DefaultBuildTimeout,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Handler returns the routed API.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.observe)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.health)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/version", s.version)
		r.Get("/formats", s.formats)
		r.With(middleware.AllowContentType("application/json")).Post("/plates", s.build)
	})
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteError(w, errors.New(errors.ErrCodeNotFound, "no route for %s %s", r.Method, r.URL.Path))
	})
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr, "cache", s.backend)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		s.logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

// observe reports every request to the server hooks and the log.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hooks := observability.Server()
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		hooks.OnRequest(r.Context(), r.Method, r.URL.Path)

		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		d := time.Since(start)
		hooks.OnResponse(r.Context(), r.Method, route, ww.Status(), d)
		s.logger.Debug("request",
			"id", middleware.GetReqID(r.Context()),
			"method", r.Method,
			"route", route,
			"status", ww.Status(),
			"duration", d)
	})
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, api.Health{Status: "ok", Cache: s.backend})
}

func (s *Server) version(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, buildinfo.Get())
}

func (s *Server) formats(w http.ResponseWriter, r *http.Request) {
	names := make([]string, len(sink.Formats))
	for i, f := range sink.Formats {
		names[i] = string(f)
	}
	httputil.WriteJSON(w, http.StatusOK, names)
}

func (s *Server) build(w http.ResponseWriter, r *http.Request) {
	var req api.BuildRequest
	if err := httputil.DecodeJSON(r, &req, maxBodyBytes); err != nil {
		httputil.WriteError(w, err)
		return
	}
	if req.Layout == "" {
		httputil.WriteError(w, errors.New(errors.ErrCodeInvalidInput, "layout is required"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.timeout)
	defer cancel()

	res, err := s.runner.Execute(ctx, req)
	if err != nil {
		if errors.GetCode(err) == "" {
			s.logger.Error("build failed", "id", middleware.GetReqID(r.Context()), "error", err)
		}
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, api.NewBuildResponse(res))
}
