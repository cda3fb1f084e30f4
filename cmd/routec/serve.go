package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"

	"github.com/vango-dev/routematch/internal/config"
	"github.com/vango-dev/routematch/pkg/compiler"
	"github.com/vango-dev/routematch/pkg/middleware"
	"github.com/vango-dev/routematch/pkg/playground"
)

const shutdownTimeout = 10 * time.Second

func serveCmd(opts *globalOptions) *cobra.Command {
	var (
		port int
		host string
		s3f  s3Flags
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the matcher playground server",
		Long: `Start an HTTP server that parses and optimizes matchers.

Endpoints:
  POST /api/parse       route tokens of {"matcher": "...", "mode": "..."}
  POST /api/optimize    matcher tokens of the same request
  GET  /api/routes      routes of the configured manifest
  GET  /ws              one JSON reply per matcher message, for live editors
  GET  /metrics         Prometheus metrics
  GET  /healthz         liveness

Examples:
  routec serve
  routec serve --port=8080 --host=0.0.0.0`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			if port > 0 {
				cfg.Serve.Port = port
			}
			if host != "" {
				cfg.Serve.Host = host
			}
			s3f.apply(cfg)

			return runServe(cfg)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to listen on (default from routec.json)")
	cmd.Flags().StringVarP(&host, "host", "H", "", "Host to bind to (default from routec.json)")
	s3f.register(cmd)

	return cmd
}

func runServe(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := slog.Default()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := compiler.NewMetrics(
		compiler.WithNamespace(cfg.Telemetry.MetricsNamespace),
		compiler.WithRegistry(registry),
	)
	c := newCompiler(cfg,
		compiler.WithMetrics(metrics),
		compiler.WithTracer(otel.Tracer(cfg.Telemetry.TracerName)),
	)

	table, err := loadTable(ctx, cfg, c)
	if err != nil {
		return err
	}

	serverOpts := []playground.Option{
		playground.WithLogger(logger),
		playground.WithGatherer(registry),
		playground.WithDefaultMode(cfg.FieldMode()),
		playground.WithHTTPMetrics(middleware.NewMetrics(
			middleware.WithNamespace(cfg.Telemetry.MetricsNamespace),
			middleware.WithRegistry(registry),
		)),
		playground.WithTracing(middleware.WithTracerName(cfg.Telemetry.TracerName)),
	}
	if table != nil {
		serverOpts = append(serverOpts, playground.WithTable(table))
		info("Loaded %d routes", table.Len())
	} else {
		warn("No manifest configured, /api/routes will be empty")
	}

	httpServer := &http.Server{
		Addr:              cfg.ServeAddress(),
		Handler:           playground.New(c, serverOpts...),
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", "address", httpServer.Addr)
		errCh <- httpServer.ListenAndServe()
	}()
	success("Playground listening on http://%s", httpServer.Addr)

	select {
	case err := <-errCh:
		if err != http.ErrServerClosed {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	info("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
		return err
	}
	logger.Info("server shutdown complete")
	return nil
}
