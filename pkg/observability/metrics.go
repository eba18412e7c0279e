package observability

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/aretw0/automaton/pkg/domain"
)

// Metrics holds the Prometheus collectors of the automaton hosts.
type Metrics struct {
	Applied     prometheus.Counter
	Rejected    *prometheus.CounterVec
	Runs        *prometheus.CounterVec
	RunSteps    prometheus.Histogram
	Enumerated  prometheus.Histogram
	EnumLatency prometheus.Histogram
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Applied: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "automaton_definitions_applied_total",
			Help: "Definitions that passed validation and were applied",
		}),
		Rejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "automaton_definitions_rejected_total",
			Help: "Definitions rejected by validation, by error kind",
		}, []string{"kind"}),
		Runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "automaton_runs_total",
			Help: "Simulated inputs, by outcome",
		}, []string{"outcome"}),
		RunSteps: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "automaton_run_steps",
			Help:    "Number of trace steps per simulated input",
			Buckets: prometheus.ExponentialBuckets(1, 2, 10),
		}),
		Enumerated: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "automaton_enumerated_strings",
			Help:    "Accepted strings returned per enumeration",
			Buckets: prometheus.LinearBuckets(0, 5, 10),
		}),
		EnumLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name: "automaton_enumeration_duration_seconds",
			Help: "Duration of language enumerations",
		}),
	}
	reg.MustRegister(m.Applied, m.Rejected, m.Runs, m.RunSteps, m.Enumerated, m.EnumLatency)
	return m
}

// Outcome labels for automaton_runs_total.
const (
	OutcomeAccepted = "accepted"
	OutcomeRejected = "rejected"
	OutcomeStalled  = "stalled"
	OutcomeError    = "error"
)

// Hooks returns lifecycle hooks that record into m.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnApply: func(ctx context.Context, e *domain.DefinitionEvent) {
			m.Applied.Inc()
		},
		OnReject: func(ctx context.Context, e *domain.DefinitionEvent) {
			m.Rejected.WithLabelValues(ErrorKind(e.Err)).Inc()
		},
		OnRun: func(ctx context.Context, e *domain.RunEvent) {
			switch {
			case e.Err != nil:
				m.Runs.WithLabelValues(OutcomeError).Inc()
				return
			case e.Accepted:
				m.Runs.WithLabelValues(OutcomeAccepted).Inc()
			case e.Stalled:
				m.Runs.WithLabelValues(OutcomeStalled).Inc()
			default:
				m.Runs.WithLabelValues(OutcomeRejected).Inc()
			}
			m.RunSteps.Observe(float64(e.Steps))
		},
		OnEnumerate: func(ctx context.Context, e *domain.EnumerateEvent) {
			m.Enumerated.Observe(float64(e.Found))
			m.EnumLatency.Observe(e.Duration.Seconds())
		},
	}
}
