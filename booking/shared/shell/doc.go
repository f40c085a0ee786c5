// Package shell is the imperative shell around the booking features' functional core.
//
// It holds what the command and query handlers share: the Command and Query contracts,
// HandlerResult, optimistic-concurrency retry with exponential backoff and the observability helpers
// used by the observable wrappers.
//
// In Domain-Driven Design or Hexagonal Architecture terminology, this would be
// called the 'infrastructure' layer.
package shell
