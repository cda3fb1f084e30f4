// Package playground serves an HTTP API for trying out route matchers.
//
// Endpoints:
//
//	POST /api/parse          {"matcher": "...", "mode": "named"} -> raw tokens
//	POST /api/optimize       same request -> optimized matcher tokens
//	GET  /api/routes         routes of the loaded manifest
//	GET  /api/routes/{name}  one manifest route
//	GET  /ws                 live checking, one matcher (or JSON request) per message
//	GET  /healthz            liveness
//	GET  /metrics            Prometheus exposition
//
// Rejected matchers are answered with 422 and an error object holding the
// reason, the expected tokens, the offset and a pretty caret rendering.
package playground
