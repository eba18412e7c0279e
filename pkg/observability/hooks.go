package observability

import (
	"context"
	"errors"
	"log/slog"

	"github.com/aretw0/automaton/pkg/domain"
)

// ErrorKind returns the DefinitionError kind of err, or "unknown".
func ErrorKind(err error) string {
	var defErr *domain.DefinitionError
	if errors.As(err, &defErr) {
		return string(defErr.Kind)
	}
	return "unknown"
}

// LoggingHooks returns lifecycle hooks that write structured log records.
func LoggingHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnApply: func(ctx context.Context, e *domain.DefinitionEvent) {
			logger.InfoContext(ctx, "definition applied",
				"name", e.Name,
				"states", e.States,
				"symbols", e.Symbols,
				"transitions", e.Transitions)
		},
		OnReject: func(ctx context.Context, e *domain.DefinitionEvent) {
			logger.WarnContext(ctx, "definition rejected", "name", e.Name, "kind", ErrorKind(e.Err), "err", e.Err)
		},
		OnRun: func(ctx context.Context, e *domain.RunEvent) {
			if e.Err != nil {
				logger.WarnContext(ctx, "run failed", "name", e.Name, "err", e.Err)
				return
			}
			logger.DebugContext(ctx, "run completed",
				"name", e.Name,
				"steps", e.Steps,
				"accepted", e.Accepted,
				"stalled", e.Stalled,
				"final_state", e.Final)
		},
		OnEnumerate: func(ctx context.Context, e *domain.EnumerateEvent) {
			logger.DebugContext(ctx, "enumeration completed",
				"name", e.Name,
				"found", e.Found,
				"max_results", e.MaxResults,
				"max_length", e.MaxLength,
				"duration", e.Duration)
		},
	}
}

// Combine fans every event out to each set of hooks, in order.
func Combine(hooks ...domain.LifecycleHooks) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnApply: func(ctx context.Context, e *domain.DefinitionEvent) {
			for _, h := range hooks {
				if h.OnApply != nil {
					h.OnApply(ctx, e)
				}
			}
		},
		OnReject: func(ctx context.Context, e *domain.DefinitionEvent) {
			for _, h := range hooks {
				if h.OnReject != nil {
					h.OnReject(ctx, e)
				}
			}
		},
		OnRun: func(ctx context.Context, e *domain.RunEvent) {
			for _, h := range hooks {
				if h.OnRun != nil {
					h.OnRun(ctx, e)
				}
			}
		},
		OnEnumerate: func(ctx context.Context, e *domain.EnumerateEvent) {
			for _, h := range hooks {
				if h.OnEnumerate != nil {
					h.OnEnumerate(ctx, e)
				}
			}
		},
	}
}
