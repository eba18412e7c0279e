package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/aretw0/automaton"
	httpAdapter "github.com/aretw0/automaton/pkg/adapters/http"
	"github.com/aretw0/automaton/pkg/adapters/mcp"
	"github.com/aretw0/automaton/pkg/observability"
)

const shutdownTimeout = 5 * time.Second

// Serve runs the HTTP API until ctx is cancelled.
func Serve(ctx *SignalContext, opts Options) error {
	logger := createLogger(opts)

	store, closer, err := OpenStore(ctx, opts.Config, logger)
	if err != nil {
		return err
	}
	defer closer.Close()

	stopTracing := setupTracing(ctx, opts, logger)
	defer stopTracing()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := observability.NewMetrics(reg)

	handler := httpAdapter.NewHandler(
		httpAdapter.WithStore(store),
		httpAdapter.WithLifecycleHooks(createHooks(logger, metrics)),
		httpAdapter.WithMetrics(reg),
		httpAdapter.WithLogger(logger),
		httpAdapter.WithEnumerationDefaults(opts.Config.MaxResults, opts.Config.MaxLength),
	)

	srv := &http.Server{
		Addr:              ":" + opts.Config.HTTP.Port,
		Handler:           otelhttp.NewHandler(handler, "automaton.http"),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("Starting automaton server", "addr", srv.Addr, "version", automaton.Version, "store", opts.Config.Store)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		logger.Info("Start shutdown", "signal", ctx.Signal())

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Graceful shutdown did not complete", "timeout", shutdownTimeout, "err", err)
			if err := srv.Close(); err != nil {
				return fmt.Errorf("error killing server: %w", err)
			}
		}
		logger.Info("Server stopped gracefully")
		return nil
	}
}

// ServeMCP runs the MCP server over stdio or SSE.
func ServeMCP(ctx *SignalContext, opts Options, transport string, port int) error {
	logger := createLogger(opts)

	stopTracing := setupTracing(ctx, opts, logger)
	defer stopTracing()

	srv := mcp.NewServer(
		mcp.WithLogger(logger),
		mcp.WithLifecycleHooks(createHooks(logger, nil)),
		mcp.WithEnumerationDefaults(opts.Config.MaxResults, opts.Config.MaxLength),
	)

	switch transport {
	case "stdio":
		logger.Info("Starting automaton MCP server (stdio)")
		return srv.ServeStdio()
	case "sse":
		if err := srv.ServeSSE(ctx, port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		logger.Info("MCP server stopped gracefully")
		return nil
	default:
		return fmt.Errorf("unknown transport %q (supported: stdio, sse)", transport)
	}
}
