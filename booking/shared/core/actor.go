package core

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/staybook/reservation-engine/reservation"
)

// Role is the privilege level of an Actor.
type Role string

const (
	// RoleMember is a regular user: requester of reservations and/or owner of resources.
	RoleMember Role = "member"

	// RoleAdmin may delete any reservation and list all reservations.
	RoleAdmin Role = "admin"
)

var ErrUnknownRole = errors.New("unknown role")

// Actor identifies who triggers a command or query. Authentication happens before this core is called.
type Actor struct {
	ID   uuid.UUID
	Role Role
}

// BuildActor creates an Actor. An empty role means RoleMember.
func BuildActor(id uuid.UUID, role Role) Actor {
	if role == "" {
		role = RoleMember
	}

	return Actor{ID: id, Role: role}
}

// ParseRole turns a transport value into a Role. An empty string is RoleMember.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case "", RoleMember:
		return RoleMember, nil
	case RoleAdmin:
		return RoleAdmin, nil
	default:
		return "", errors.Join(reservation.ErrValidation, ErrUnknownRole, fmt.Errorf("role %q", s))
	}
}

func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// Controls is true for the owner of the resource.
func (a Actor) Controls(resource reservation.Resource) bool {
	return resource.IsOwnedBy(a.ID)
}

// CanView is true for admins, the requester of r and the owner of its resource.
func (a Actor) CanView(r reservation.Reservation, resource reservation.Resource) bool {
	return a.IsAdmin() || r.RequesterID == a.ID || a.Controls(resource)
}
