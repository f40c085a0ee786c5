// Package fixtures provides test data builders and Given helpers working against any reservation store.
package fixtures
