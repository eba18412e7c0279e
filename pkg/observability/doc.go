/*
Package observability turns automaton lifecycle events into logs, Prometheus metrics and
OpenTelemetry spans.

Hosts register the hooks returned by LoggingHooks, TracingHooks and Metrics.Hooks (or
several of them, through Combine) on a Workbench. SetupTracing installs an OTLP exporter
as the global tracer provider.
*/
package observability
