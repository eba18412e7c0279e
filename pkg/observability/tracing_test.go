package observability_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/aretw0/automaton/pkg/domain"
	"github.com/aretw0/automaton/pkg/observability"
)

func setupTestTracer(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		otel.SetTracerProvider(prev)
		if err := tp.Shutdown(context.Background()); err != nil {
			t.Logf("tracer provider shutdown: %v", err)
		}
	})
	return recorder
}

func attrMap(kvs []attribute.KeyValue) map[attribute.Key]attribute.Value {
	out := make(map[attribute.Key]attribute.Value, len(kvs))
	for _, kv := range kvs {
		out[kv.Key] = kv.Value
	}
	return out
}

func TestTracingHooks(t *testing.T) {
	recorder := setupTestTracer(t)
	hooks := observability.TracingHooks()
	ctx := context.Background()
	now := time.Now()

	hooks.OnApply(ctx, &domain.DefinitionEvent{EventBase: domain.EventBase{Timestamp: now, Name: "wb"}, States: 2})
	hooks.OnReject(ctx, &domain.DefinitionEvent{
		EventBase: domain.EventBase{Timestamp: now},
		Err:       &domain.DefinitionError{Kind: domain.KindAcceptingStatesNotSubset, State: "q9"},
	})
	hooks.OnRun(ctx, &domain.RunEvent{EventBase: domain.EventBase{Timestamp: now}, Steps: 4, Accepted: true, Final: "q0"})
	hooks.OnEnumerate(ctx, &domain.EnumerateEvent{EventBase: domain.EventBase{Timestamp: now}, Found: 3, Duration: 2 * time.Millisecond})

	spans := recorder.Ended()
	require.Len(t, spans, 4)

	assert.Equal(t, "automaton.apply", spans[0].Name())
	assert.Equal(t, int64(2), attrMap(spans[0].Attributes())["automaton.states"].AsInt64())
	assert.Equal(t, "wb", attrMap(spans[0].Attributes())["automaton.name"].AsString())

	assert.Equal(t, "automaton.apply", spans[1].Name())
	assert.Equal(t, codes.Error, spans[1].Status().Code)
	assert.Equal(t, "AcceptingStatesNotSubset", attrMap(spans[1].Attributes())["automaton.error_kind"].AsString())

	assert.Equal(t, "automaton.run", spans[2].Name())
	assert.True(t, attrMap(spans[2].Attributes())["automaton.accepted"].AsBool())
	assert.Equal(t, codes.Unset, spans[2].Status().Code)

	assert.Equal(t, "automaton.enumerate", spans[3].Name())
	assert.Equal(t, 2*time.Millisecond, spans[3].EndTime().Sub(spans[3].StartTime()))
}

func TestSetupTracing_Disabled(t *testing.T) {
	shutdown, err := observability.SetupTracing(context.Background(), observability.TracingConfig{})
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}
