// Package httpapi exposes the booking commands and queries over HTTP.
//
// Authentication happens in front of this layer. The caller identity arrives in the X-Actor-ID
// and X-Actor-Role headers and is passed to the core as a core.Actor.
//
// Routes:
//
//	PUT    /resources/{resourceID}                 register a resource and its owner
//	POST   /resources/{resourceID}/reservations    request a reservation
//	GET    /resources/{resourceID}/reservations    list reservations of a resource (?status=)
//	GET    /reservations                           list all reservations, administrators only (?status=)
//	GET    /reservations/{reservationID}           reservation details
//	POST   /reservations/{reservationID}/approve   approve, rejecting overlapping Pending reservations
//	POST   /reservations/{reservationID}/reject    reject
//	POST   /reservations/{reservationID}/cancel    cancel a Pending reservation
//	DELETE /reservations/{reservationID}           delete, administrators only
//	GET    /requesters/{requesterID}/reservations  reservations of a requester
//	GET    /owners/{ownerID}/reservations          reservations on the resources of an owner (?status=)
//	GET    /health                                 liveness
package httpapi
