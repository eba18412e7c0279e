package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/grpc/credentials"

	"github.com/aretw0/automaton/pkg/domain"
)

// TracerName is the instrumentation scope of automaton spans.
const TracerName = "github.com/aretw0/automaton"

// TracingConfig describes the OTLP exporter.
type TracingConfig struct {
	ServiceName string
	Endpoint    string
	Insecure    bool
}

// SetupTracing installs the process-wide tracer provider and returns its shutdown function.
// With an empty endpoint nothing is installed and the returned shutdown is a no-op.
func SetupTracing(ctx context.Context, cfg TracingConfig) (func(context.Context) error, error) {
	if cfg.Endpoint == "" {
		return func(context.Context) error { return nil }, nil
	}

	clientOpts := []otlptracegrpc.Option{otlptracegrpc.WithEndpoint(cfg.Endpoint)}
	if cfg.Insecure {
		clientOpts = append(clientOpts, otlptracegrpc.WithInsecure())
	} else {
		clientOpts = append(clientOpts, otlptracegrpc.WithTLSCredentials(credentials.NewClientTLSFromCert(nil, "")))
	}

	exporter, err := otlptrace.New(ctx, otlptracegrpc.NewClient(clientOpts...))
	if err != nil {
		return nil, fmt.Errorf("create otlp exporter: %w", err)
	}

	res, err := resource.New(ctx,
		resource.WithSchemaURL(semconv.SchemaURL),
		resource.WithAttributes(semconv.ServiceName(cfg.ServiceName)),
	)
	if err != nil {
		return nil, fmt.Errorf("create resource: %w", err)
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter, sdktrace.WithBatchTimeout(5*time.Second)),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(provider)
	return provider.Shutdown, nil
}

// TracingHooks returns lifecycle hooks that record one span per event.
// Spans are resolved through the global tracer provider at event time, so hooks built
// before SetupTracing still export.
func TracingHooks() domain.LifecycleHooks {
	tracer := func() trace.Tracer { return otel.Tracer(TracerName) }

	return domain.LifecycleHooks{
		OnApply: func(ctx context.Context, e *domain.DefinitionEvent) {
			_, span := tracer().Start(ctx, "automaton.apply", trace.WithTimestamp(e.Timestamp))
			span.SetAttributes(definitionAttrs(e)...)
			span.End(trace.WithTimestamp(e.Timestamp))
		},
		OnReject: func(ctx context.Context, e *domain.DefinitionEvent) {
			_, span := tracer().Start(ctx, "automaton.apply", trace.WithTimestamp(e.Timestamp))
			span.SetAttributes(definitionAttrs(e)...)
			span.SetAttributes(attribute.String("automaton.error_kind", ErrorKind(e.Err)))
			span.RecordError(e.Err)
			span.SetStatus(codes.Error, "definition rejected")
			span.End(trace.WithTimestamp(e.Timestamp))
		},
		OnRun: func(ctx context.Context, e *domain.RunEvent) {
			_, span := tracer().Start(ctx, "automaton.run", trace.WithTimestamp(e.Timestamp))
			span.SetAttributes(
				attribute.String("automaton.name", e.Name),
				attribute.Int("automaton.steps", e.Steps),
				attribute.Bool("automaton.accepted", e.Accepted),
				attribute.Bool("automaton.stalled", e.Stalled),
				attribute.String("automaton.final_state", e.Final),
			)
			if e.Err != nil {
				span.RecordError(e.Err)
				span.SetStatus(codes.Error, "run failed")
			}
			span.End(trace.WithTimestamp(e.Timestamp))
		},
		OnEnumerate: func(ctx context.Context, e *domain.EnumerateEvent) {
			start := e.Timestamp.Add(-e.Duration)
			_, span := tracer().Start(ctx, "automaton.enumerate", trace.WithTimestamp(start))
			span.SetAttributes(
				attribute.String("automaton.name", e.Name),
				attribute.Int("automaton.max_results", e.MaxResults),
				attribute.Int("automaton.max_length", e.MaxLength),
				attribute.Int("automaton.found", e.Found),
			)
			span.End(trace.WithTimestamp(e.Timestamp))
		},
	}
}

func definitionAttrs(e *domain.DefinitionEvent) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String("automaton.name", e.Name),
		attribute.Int("automaton.states", e.States),
		attribute.Int("automaton.symbols", e.Symbols),
		attribute.Int("automaton.transitions", e.Transitions),
	}
}
