// Package allreservations implements the administrative listing of every reservation.
package allreservations
