package middleware

import (
	"context"
	"log/slog"
	"time"

	"github.com/aretw0/automaton/pkg/domain"
	"github.com/aretw0/automaton/pkg/ports"
)

type loggingMiddleware struct {
	next   ports.DefinitionStore
	logger *slog.Logger
}

// NewLoggingMiddleware creates a middleware that logs every store operation at debug level.
// Failures are logged at warn level.
func NewLoggingMiddleware(logger *slog.Logger) Middleware {
	return func(next ports.DefinitionStore) ports.DefinitionStore {
		return &loggingMiddleware{next: next, logger: logger}
	}
}

func (m *loggingMiddleware) log(ctx context.Context, op, name string, start time.Time, err error) {
	if err != nil {
		m.logger.WarnContext(ctx, "store operation failed", "op", op, "name", name, "err", err)
		return
	}
	m.logger.DebugContext(ctx, "store operation", "op", op, "name", name, "duration", time.Since(start))
}

func (m *loggingMiddleware) Save(ctx context.Context, name string, def *domain.Definition) error {
	start := time.Now()
	err := m.next.Save(ctx, name, def)
	m.log(ctx, "save", name, start, err)
	return err
}

func (m *loggingMiddleware) Load(ctx context.Context, name string) (*domain.Definition, error) {
	start := time.Now()
	def, err := m.next.Load(ctx, name)
	m.log(ctx, "load", name, start, err)
	return def, err
}

func (m *loggingMiddleware) Delete(ctx context.Context, name string) error {
	start := time.Now()
	err := m.next.Delete(ctx, name)
	m.log(ctx, "delete", name, start, err)
	return err
}

func (m *loggingMiddleware) List(ctx context.Context) ([]string, error) {
	start := time.Now()
	names, err := m.next.List(ctx)
	m.log(ctx, "list", "", start, err)
	return names, err
}
