package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/aretw0/automaton/internal/config"
	"github.com/aretw0/automaton/internal/logging"
	"github.com/aretw0/automaton/pkg/domain"
	"github.com/aretw0/automaton/pkg/observability"
)

// Options carries the settings shared by every command.
type Options struct {
	Config config.Config
	Debug  bool
	// Output is "text" (rendered markdown on terminals), "json" or "yaml".
	Output string
	Stdout io.Writer
	Stderr io.Writer
}

// Output formats.
const (
	OutputText = "text"
	OutputJSON = "json"
	OutputYAML = "yaml"
)

func (o Options) stdout() io.Writer {
	if o.Stdout != nil {
		return o.Stdout
	}
	return os.Stdout
}

func (o Options) stderr() io.Writer {
	if o.Stderr != nil {
		return o.Stderr
	}
	return os.Stderr
}

// SignalContext wraps a context and captures the signal that cancelled it.
type SignalContext struct {
	context.Context
	Cancel func()
	stop   sync.Once
	sigCh  chan os.Signal
	sigVal os.Signal
	mu     sync.Mutex
}

// NewSignalContext creates a context that is cancelled on SIGINT or SIGTERM.
// It acts as a drop-in replacement for signal.NotifyContext but allows retrieving the signal.
func NewSignalContext(parent context.Context) *SignalContext {
	ctx, cancel := context.WithCancel(parent)
	sc := &SignalContext{
		Context: ctx,
		Cancel:  cancel,
		sigCh:   make(chan os.Signal, 1),
	}

	signal.Notify(sc.sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		select {
		case sig := <-sc.sigCh:
			sc.mu.Lock()
			sc.sigVal = sig
			sc.mu.Unlock()
			sc.Cancel()
		case <-sc.Context.Done():
		}
		sc.stop.Do(func() {
			signal.Stop(sc.sigCh)
		})
	}()

	return sc
}

// Signal returns the signal that caused the context to be cancelled, or nil.
func (sc *SignalContext) Signal() os.Signal {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.sigVal
}

// createLogger configures the application logger.
// Debug forces debug level; otherwise the configured level applies.
func createLogger(opts Options) *slog.Logger {
	level, err := logging.ParseLevel(opts.Config.LogLevel)
	if err != nil {
		level = slog.LevelInfo
	}
	if opts.Debug {
		level = slog.LevelDebug
	}
	return logging.NewWithFormat(opts.stderr(), level, logging.Format(opts.Config.LogFormat))
}

// createHooks returns logging and tracing hooks, fanned out with metrics when m is not nil.
func createHooks(logger *slog.Logger, m *observability.Metrics) domain.LifecycleHooks {
	hooks := []domain.LifecycleHooks{observability.LoggingHooks(logger), observability.TracingHooks()}
	if m != nil {
		hooks = append(hooks, m.Hooks())
	}
	return observability.Combine(hooks...)
}

// setupTracing installs the OTLP exporter when an endpoint is configured.
// The returned function flushes pending spans and never fails the command.
func setupTracing(ctx context.Context, opts Options, logger *slog.Logger) func() {
	shutdown, err := observability.SetupTracing(ctx, observability.TracingConfig{
		ServiceName: opts.Config.Tracing.ServiceName,
		Endpoint:    opts.Config.Tracing.Endpoint,
		Insecure:    opts.Config.Tracing.Insecure,
	})
	if err != nil {
		logger.Warn("tracing disabled", "err", err)
		return func() {}
	}
	if opts.Config.Tracing.Endpoint != "" {
		logger.Info("tracing enabled", "endpoint", opts.Config.Tracing.Endpoint)
	}
	return func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdown(flushCtx); err != nil {
			logger.Warn("tracer provider shutdown", "err", err)
		}
	}
}

// printSystemMessage prints a standardized system message.
func printSystemMessage(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, ">>> %s\n", fmt.Sprintf(format, args...))
}
