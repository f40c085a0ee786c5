// Package rejectreservation implements the Reject Reservation use case.
//
// Only the owner of the resource may reject, and only while the reservation is Pending.
package rejectreservation
