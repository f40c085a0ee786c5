// Package expirestalereservations implements the periodic sweep that rejects Pending reservations
// whose check-in has already passed.
//
// The candidates are found with an eventually consistent listing. Each affected resource is then
// decided again on its current state, so a reservation approved in the meantime stays Approved.
package expirestalereservations
