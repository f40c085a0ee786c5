// Package reservationsbyrequester implements the "my reservations" listing of a requester.
package reservationsbyrequester
