package playground

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vango-dev/routematch/pkg/compiler"
	"github.com/vango-dev/routematch/pkg/manifest"
	"github.com/vango-dev/routematch/pkg/middleware"
	"github.com/vango-dev/routematch/pkg/routeparser"
)

// Server is the playground HTTP handler.
type Server struct {
	compiler    *compiler.Compiler
	table       *manifest.Table
	logger      *slog.Logger
	gatherer    prometheus.Gatherer
	defaultMode routeparser.FieldMode
	upgrader    websocket.Upgrader
	httpMetrics *middleware.Metrics
	tracing     []middleware.OTelOption
	traced      bool
	router      chi.Router
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger used for request and websocket logs.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithTable exposes a compiled manifest under /api/routes.
func WithTable(table *manifest.Table) Option {
	return func(s *Server) {
		s.table = table
	}
}

// WithGatherer sets the metrics source for /metrics.
// Default: prometheus.DefaultGatherer
func WithGatherer(g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.gatherer = g
	}
}

// WithDefaultMode sets the mode used when a request names none.
func WithDefaultMode(mode routeparser.FieldMode) Option {
	return func(s *Server) {
		s.defaultMode = mode
	}
}

// WithCheckOrigin sets the websocket origin check. The default accepts
// same-origin requests only.
func WithCheckOrigin(check func(*http.Request) bool) Option {
	return func(s *Server) {
		s.upgrader.CheckOrigin = check
	}
}

// WithHTTPMetrics records request and websocket metrics.
func WithHTTPMetrics(m *middleware.Metrics) Option {
	return func(s *Server) {
		s.httpMetrics = m
	}
}

// WithTracing starts an OpenTelemetry server span for every request.
func WithTracing(opts ...middleware.OTelOption) Option {
	return func(s *Server) {
		s.traced = true
		s.tracing = opts
	}
}

// New creates the playground handler.
func New(c *compiler.Compiler, opts ...Option) *Server {
	s := &Server{
		compiler: c,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.gatherer == nil {
		s.gatherer = prometheus.DefaultGatherer
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	if s.httpMetrics != nil {
		r.Use(s.httpMetrics.Middleware)
	}
	if s.traced {
		r.Use(middleware.OpenTelemetry(s.tracing...))
	}
	r.Use(middleware.Logger(s.logger))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	r.Get("/ws", s.handleWS)

	r.Route("/api", func(r chi.Router) {
		r.Post("/parse", s.handleParse)
		r.Post("/optimize", s.handleOptimize)
		r.Get("/routes", s.handleRoutes)
		r.Get("/routes/{name}", s.handleRoute)
	})

	s.router = r
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}
