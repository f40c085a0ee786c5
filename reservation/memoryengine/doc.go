// Package memoryengine provides an in-memory reservation store.
//
// It is used by unit tests of the feature handlers and by the service when no database is configured.
// Commits are serialized by a mutex and checked against the resource version exactly like in the postgres engine.
package memoryengine
