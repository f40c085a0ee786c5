// Package core holds the pieces of the functional core that every booking feature shares:
// the DecisionResult returned by the pure Decide functions and the Actor who triggers a command or query.
//
// Nothing in this package performs I/O.
package core
