// Package requestreservation implements the Request Reservation use case.
//
// A request is checked against the Approved reservations of the resource only. Several Pending
// requests for the same dates may coexist until the owner approves one of them.
//
// Intervals are half-open: a stay may start on the day another one ends.
package requestreservation
