package compiler

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/routematch/pkg/routeparser"
)

const (
	// DefaultCacheSize is the number of routes cached when WithCacheSize is
	// not given.
	DefaultCacheSize = 1024

	// DefaultTracerName is the tracer used when WithTracer is not given.
	DefaultTracerName = "github.com/vango-dev/routematch"

	spanName = "routematch.compile"
)

// Route is a compiled matcher. Routes returned by a Compiler may be shared
// between callers and must not be modified.
type Route struct {
	Matcher  string
	Mode     routeparser.FieldMode
	Tokens   []routeparser.RouteToken
	Matchers []routeparser.MatcherToken
}

// Captures returns the capture specs of the route in order of appearance.
func (r *Route) Captures() []routeparser.CaptureSpec {
	var out []routeparser.CaptureSpec
	for _, tok := range r.Matchers {
		if tok.Kind == routeparser.MatcherCapture {
			out = append(out, tok.Capture)
		}
	}
	return out
}

// Anchored reports whether the route ends with "!".
func (r *Route) Anchored() bool {
	n := len(r.Matchers)
	return n > 0 && r.Matchers[n-1].Kind == routeparser.MatcherEnd
}

// Compiler parses and optimizes matcher strings.
type Compiler struct {
	logger    *slog.Logger
	tracer    trace.Tracer
	metrics   *Metrics
	cacheSize int
	cache     *routeCache
}

// Option configures a Compiler.
type Option func(*Compiler)

// WithLogger sets the logger. Compilations are logged at debug level.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Compiler) {
		c.logger = logger
	}
}

// WithCacheSize bounds the route cache. Zero disables caching.
func WithCacheSize(n int) Option {
	return func(c *Compiler) {
		c.cacheSize = n
	}
}

// WithMetrics records Prometheus metrics for every compilation.
func WithMetrics(m *Metrics) Option {
	return func(c *Compiler) {
		c.metrics = m
	}
}

// WithTracer sets the tracer. The default comes from the global
// OpenTelemetry tracer provider.
func WithTracer(tracer trace.Tracer) Option {
	return func(c *Compiler) {
		c.tracer = tracer
	}
}

// New creates a Compiler.
func New(opts ...Option) *Compiler {
	c := &Compiler{
		cacheSize: DefaultCacheSize,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	if c.tracer == nil {
		c.tracer = otel.Tracer(DefaultTracerName)
	}
	if c.cacheSize > 0 {
		c.cache = newRouteCache(c.cacheSize)
	}
	return c
}

// Compile parses and optimizes matcher. A rejected matcher yields a
// *routeparser.ParseError.
func (c *Compiler) Compile(ctx context.Context, matcher string, mode routeparser.FieldMode) (*Route, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ctx, span := c.tracer.Start(ctx, spanName,
		trace.WithAttributes(
			attribute.String("routematch.matcher", matcher),
			attribute.String("routematch.mode", mode.String()),
		),
	)
	defer span.End()

	key := cacheKey{matcher: matcher, mode: mode}
	if c.cache != nil {
		if route, ok := c.cache.get(key); ok {
			c.metrics.recordHit(mode)
			span.SetAttributes(attribute.Bool("routematch.cache_hit", true))
			return route, nil
		}
		c.metrics.recordMiss()
	}

	start := time.Now()
	tokens, err := routeparser.Parse(matcher, mode)
	if err != nil {
		var perr *routeparser.ParseError
		reason := routeparser.ReasonNone
		if errors.As(err, &perr) {
			reason = perr.Reason
			span.SetAttributes(attribute.Int("routematch.offset", perr.Offset()))
		}
		c.metrics.recordCompile(mode, time.Since(start), reason, true)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		c.logger.DebugContext(ctx, "route rejected",
			"matcher", matcher,
			"mode", mode.String(),
			"reason", string(reason),
			"error", err,
		)
		return nil, err
	}

	route := &Route{
		Matcher:  matcher,
		Mode:     mode,
		Tokens:   tokens,
		Matchers: routeparser.Optimize(tokens),
	}
	c.metrics.recordCompile(mode, time.Since(start), routeparser.ReasonNone, false)

	if c.cache != nil {
		c.metrics.setEntries(c.cache.add(key, route))
	}

	span.SetAttributes(
		attribute.Bool("routematch.cache_hit", false),
		attribute.Int("routematch.tokens", len(route.Tokens)),
		attribute.Int("routematch.matchers", len(route.Matchers)),
	)
	span.SetStatus(codes.Ok, "")
	c.logger.DebugContext(ctx, "route compiled",
		"matcher", matcher,
		"mode", mode.String(),
		"tokens", len(route.Tokens),
		"matchers", len(route.Matchers),
	)
	return route, nil
}

// Len returns the number of cached routes.
func (c *Compiler) Len() int {
	if c.cache == nil {
		return 0
	}
	return c.cache.len()
}

// Purge empties the route cache.
func (c *Compiler) Purge() {
	if c.cache == nil {
		return
	}
	c.cache.purge()
	c.metrics.setEntries(0)
}
