package reservation

import (
	"github.com/google/uuid"
)

// StatusChange moves one reservation from one status to another.
type StatusChange struct {
	ReservationID uuid.UUID
	From          Status
	To            Status
}

// Changes is one atomic unit of work against a single resource.
// A store either commits all of it or none of it.
type Changes struct {
	Inserts       Reservations
	StatusChanges []StatusChange
	Deletes       []uuid.UUID
}

// Insert creates Changes inserting one reservation.
func Insert(r Reservation) Changes {
	return Changes{Inserts: Reservations{r}}
}

// Transition creates Changes moving each given reservation to status to.
func Transition(to Status, reservations ...Reservation) Changes {
	c := Changes{StatusChanges: make([]StatusChange, 0, len(reservations))}
	for _, r := range reservations {
		c.StatusChanges = append(c.StatusChanges, StatusChange{ReservationID: r.ID, From: r.Status, To: to})
	}

	return c
}

// Delete creates Changes removing the given reservations.
func Delete(ids ...uuid.UUID) Changes {
	return Changes{Deletes: ids}
}

// And merges other into c.
func (c Changes) And(other Changes) Changes {
	return Changes{
		Inserts:       append(append(Reservations{}, c.Inserts...), other.Inserts...),
		StatusChanges: append(append([]StatusChange{}, c.StatusChanges...), other.StatusChanges...),
		Deletes:       append(append([]uuid.UUID{}, c.Deletes...), other.Deletes...),
	}
}

// IsEmpty reports whether there is nothing to commit.
func (c Changes) IsEmpty() bool {
	return c.Count() == 0
}

// Count returns the number of row level changes.
func (c Changes) Count() int {
	return len(c.Inserts) + len(c.StatusChanges) + len(c.Deletes)
}

// StatusChangesByTarget groups status changes by (From, To) so each group can be written with one statement.
func (c Changes) StatusChangesByTarget() map[StatusChange][]uuid.UUID {
	groups := make(map[StatusChange][]uuid.UUID)
	for _, sc := range c.StatusChanges {
		key := StatusChange{From: sc.From, To: sc.To}
		groups[key] = append(groups[key], sc.ReservationID)
	}

	return groups
}
