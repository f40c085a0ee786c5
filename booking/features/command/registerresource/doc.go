// Package registerresource implements the registration of a rentable resource and its owner.
//
// Resources themselves live outside this system. Only the owner mapping is kept, it decides
// who may approve and reject reservations.
package registerresource
