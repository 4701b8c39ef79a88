// Package observability wires OpenTelemetry tracing and metrics for the
// audio pipeline: OTLP HTTP exporters, span helpers for pipeline stages,
// and counters and histograms for run and stage durations.
package observability
