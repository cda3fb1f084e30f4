// Package middleware provides net/http middleware for the routematch
// playground server.
//
// This package includes:
//   - Prometheus request metrics
//   - OpenTelemetry server spans
//   - Structured request logging
//
// Every middleware has the func(http.Handler) http.Handler shape accepted by
// chi's Router.Use. Route labels come from the chi route pattern, so mount
// the middleware on a chi router:
//
//	metrics := middleware.NewMetrics(middleware.WithRegistry(reg))
//
//	r := chi.NewRouter()
//	r.Use(metrics.Middleware)
//	r.Use(middleware.OpenTelemetry(middleware.WithTracerName("routec")))
//	r.Use(middleware.Logger(slog.Default()))
//
// # Prometheus Metrics
//
//   - routematch_http_requests_total{route,method,code}
//   - routematch_http_request_duration_seconds{route,method}
//   - routematch_http_requests_in_flight
//   - routematch_http_request_errors_total{route,type}
//   - routematch_http_websocket_events_total{event}
//
// # Context Propagation
//
// OpenTelemetry stores the server span in the request context, so spans
// started by handlers (for example by the route compiler) become its
// children.
package middleware
