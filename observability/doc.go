// Package observability provides OpenTelemetry tracing and metrics for
// slotkit: OTLP HTTP exporter setup plus instrumentation helpers the
// registry and slot resolution record mutations and resolve latency with.
//
// All recording helpers are safe to call before any provider is installed;
// the otel globals default to no-op implementations.
package observability
