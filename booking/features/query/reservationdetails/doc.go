// Package reservationdetails implements the lookup of a single reservation with view permission.
package reservationdetails
