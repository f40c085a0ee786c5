// Package testdoubles provides spies for the observability interfaces of the reservation packages.
//
//   - LoggerSpy: captures Logger and ContextualLogger calls
//   - MetricsCollectorSpy: captures durations, counters and values, with a fluent matcher
//   - TracingCollectorSpy: captures started and finished spans
//
// All spies are safe for concurrent use.
package testdoubles
