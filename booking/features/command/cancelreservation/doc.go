// Package cancelreservation implements the Cancel Reservation use case:
// a requester withdraws a reservation that is still Pending.
package cancelreservation
