// Package deletereservation implements the administrative removal of a reservation.
//
// Deleting an Approved reservation frees its interval; nothing is re-approved automatically.
package deletereservation
