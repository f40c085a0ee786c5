// Package reservationsforresource implements the listing of one resource's reservations,
// optionally narrowed to a single status.
package reservationsforresource
