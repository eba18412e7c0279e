package observability_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/aretw0/automaton/pkg/domain"
	"github.com/aretw0/automaton/pkg/observability"
)

func TestMetrics_Hooks(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := observability.NewMetrics(reg)
	hooks := m.Hooks()
	ctx := context.Background()

	hooks.OnApply(ctx, &domain.DefinitionEvent{})
	hooks.OnReject(ctx, &domain.DefinitionEvent{Err: &domain.DefinitionError{Kind: domain.KindTransitionTargetUnknown}})
	hooks.OnRun(ctx, &domain.RunEvent{Accepted: true, Steps: 3})
	hooks.OnRun(ctx, &domain.RunEvent{Stalled: true, Steps: 1})
	hooks.OnRun(ctx, &domain.RunEvent{Steps: 2})
	hooks.OnRun(ctx, &domain.RunEvent{Err: &domain.InputError{Position: 1, Symbol: "x"}})
	hooks.OnEnumerate(ctx, &domain.EnumerateEvent{Found: 4, Duration: time.Millisecond})

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Applied))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Rejected.WithLabelValues("TransitionTargetUnknown")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Runs.WithLabelValues(observability.OutcomeAccepted)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Runs.WithLabelValues(observability.OutcomeStalled)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Runs.WithLabelValues(observability.OutcomeRejected)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Runs.WithLabelValues(observability.OutcomeError)))
	assert.Equal(t, 1, testutil.CollectAndCount(m.RunSteps, "automaton_run_steps"))
}

func TestCombine_FansOut(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	reg := prometheus.NewRegistry()
	m := observability.NewMetrics(reg)
	hooks := observability.Combine(observability.LoggingHooks(logger), m.Hooks(), domain.LifecycleHooks{})

	hooks.OnApply(context.Background(), &domain.DefinitionEvent{EventBase: domain.EventBase{Name: "parity"}, States: 2})

	assert.Contains(t, buf.String(), "definition applied")
	assert.Contains(t, buf.String(), "name=parity")
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Applied))
}

func TestErrorKind(t *testing.T) {
	assert.Equal(t, "SymbolNotInAlphabet", observability.ErrorKind(&domain.DefinitionError{Kind: domain.KindSymbolNotInAlphabet}))
	assert.Equal(t, "unknown", observability.ErrorKind(domain.ErrNotApplied))
}
