// Package compiler turns matcher strings into compiled routes: the raw
// tokens from routeparser plus the optimized matcher tokens.
//
// A Compiler is safe for concurrent use. Successful compilations are kept in
// a bounded LRU cache keyed by matcher and field mode, so repeated lookups
// of the same route are free. Failures are never cached.
//
// Every compilation can be observed:
//   - Prometheus metrics via WithMetrics(NewMetrics(...))
//   - an OpenTelemetry span named "routematch.compile"
//   - debug-level slog records for accepted and rejected routes
//
// # Usage
//
//	c := compiler.New(
//	    compiler.WithLogger(logger),
//	    compiler.WithCacheSize(512),
//	    compiler.WithMetrics(compiler.NewMetrics(compiler.WithRegistry(reg))),
//	)
//
//	route, err := c.Compile(ctx, "/users/{id}!", routeparser.FieldsNamed)
//	if err != nil {
//	    return err
//	}
//	for _, tok := range route.Matchers {
//	    fmt.Println(tok)
//	}
package compiler
