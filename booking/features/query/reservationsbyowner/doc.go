// Package reservationsbyowner implements the owner's inbox: all reservations on the resources
// an owner registered.
package reservationsbyowner
