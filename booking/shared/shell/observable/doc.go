// Package observable provides wrappers that instrument command and query handlers
// with metrics, tracing and logging while the handlers themselves stay pure business logic.
//
// The wrappers are applied externally at wiring time:
//
//	coreHandler := approvereservation.NewCommandHandler(store)
//
//	handler, err := observable.NewCommandWrapper[approvereservation.Command](
//		coreHandler,
//		observable.WithCommandMetrics[approvereservation.Command](metricsCollector),
//		observable.WithCommandTracing[approvereservation.Command](tracingCollector),
//		observable.WithCommandContextualLogging[approvereservation.Command](contextualLogger),
//	)
//
// For unit tests focused on business logic, use the handlers without a wrapper.
package observable
