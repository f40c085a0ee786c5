// Package oteladapters implements the observability interfaces of package reservation with OpenTelemetry.
//
//   - SlogBridgeLogger: Logger and ContextualLogger over log/slog, by default through the otelslog bridge
//   - OTelLogger: ContextualLogger emitting OpenTelemetry log records directly
//   - MetricsCollector: ContextualMetricsCollector over OpenTelemetry histograms, counters and gauges
//   - TracingCollector: TracingCollector over OpenTelemetry spans
package oteladapters
