package compiler

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/vango-dev/routematch/pkg/routeparser"
)

// MetricsConfig configures the compiler's Prometheus metrics.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "routematch").
	Namespace string

	// Subsystem is the metrics subsystem (default: "compiler").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for compile duration.
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the compiler's Prometheus metrics.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "routematch",
		Subsystem: "compiler",
		// Parsing is linear and fast; most compiles finish in microseconds.
		Buckets:  []float64{.00001, .00005, .0001, .0005, .001, .005, .01, .05},
		Registry: prometheus.DefaultRegisterer,
	}
}

// Metrics holds the compiler's Prometheus collectors.
//
// Collectors registered:
//   - routematch_compiler_compiles_total{mode,result}
//   - routematch_compiler_compile_errors_total{reason}
//   - routematch_compiler_compile_duration_seconds{mode}
//   - routematch_compiler_cache_hits_total
//   - routematch_compiler_cache_misses_total
//   - routematch_compiler_cache_entries
type Metrics struct {
	compilesTotal   *prometheus.CounterVec
	compileErrors   *prometheus.CounterVec
	compileDuration *prometheus.HistogramVec
	cacheHits       prometheus.Counter
	cacheMisses     prometheus.Counter
	cacheEntries    prometheus.Gauge
}

// NewMetrics creates and registers the compiler collectors. It panics if
// they are already registered with the chosen registry.
func NewMetrics(opts ...MetricsOption) *Metrics {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)

	return &Metrics{
		compilesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "compiles_total",
			Help:        "Total number of matcher compilations by field mode and result",
			ConstLabels: config.ConstLabels,
		}, []string{"mode", "result"}),

		compileErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "compile_errors_total",
			Help:        "Total number of rejected matchers by failure reason",
			ConstLabels: config.ConstLabels,
		}, []string{"reason"}),

		compileDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "compile_duration_seconds",
			Help:        "Time spent parsing and optimizing uncached matchers",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"mode"}),

		cacheHits: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "cache_hits_total",
			Help:        "Compilations served from the route cache",
			ConstLabels: config.ConstLabels,
		}),

		cacheMisses: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "cache_misses_total",
			Help:        "Compilations that had to parse the matcher",
			ConstLabels: config.ConstLabels,
		}),

		cacheEntries: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "cache_entries",
			Help:        "Number of compiled routes currently cached",
			ConstLabels: config.ConstLabels,
		}),
	}
}

// The methods below accept a nil receiver so the compiler can call them
// unconditionally.

func (m *Metrics) recordHit(mode routeparser.FieldMode) {
	if m == nil {
		return
	}
	m.cacheHits.Inc()
	m.compilesTotal.WithLabelValues(mode.String(), "ok").Inc()
}

func (m *Metrics) recordMiss() {
	if m == nil {
		return
	}
	m.cacheMisses.Inc()
}

func (m *Metrics) recordCompile(mode routeparser.FieldMode, elapsed time.Duration, reason routeparser.Reason, failed bool) {
	if m == nil {
		return
	}
	m.compileDuration.WithLabelValues(mode.String()).Observe(elapsed.Seconds())
	if !failed {
		m.compilesTotal.WithLabelValues(mode.String(), "ok").Inc()
		return
	}
	m.compilesTotal.WithLabelValues(mode.String(), "error").Inc()
	m.compileErrors.WithLabelValues(reasonLabel(reason)).Inc()
}

func (m *Metrics) setEntries(n int) {
	if m == nil {
		return
	}
	m.cacheEntries.Set(float64(n))
}

func reasonLabel(r routeparser.Reason) string {
	if r == routeparser.ReasonNone {
		return "unmatched"
	}
	return string(r)
}
