package reservation

import "context"

// ConsistencyLevel tells a store whether a read may be served by a replica.
type ConsistencyLevel int

const (
	// StrongConsistency reads from the primary. Command handlers need it to decide on the latest version.
	StrongConsistency ConsistencyLevel = iota

	// EventualConsistency allows replica reads. Listings can tolerate slightly stale data.
	EventualConsistency
)

type contextKey string

// ConsistencyLevelKey is the context key holding the requested ConsistencyLevel.
const ConsistencyLevelKey contextKey = "reservation.consistency_level"

// WithStrongConsistency marks ctx so that reads go to the primary database.
func WithStrongConsistency(ctx context.Context) context.Context {
	return context.WithValue(ctx, ConsistencyLevelKey, StrongConsistency)
}

// WithEventualConsistency marks ctx so that reads may go to a replica.
//
// Example usage:
//
//	ctx = reservation.WithEventualConsistency(ctx)
//	list, err := store.List(ctx, reservation.ForOwner(ownerID))
func WithEventualConsistency(ctx context.Context) context.Context {
	return context.WithValue(ctx, ConsistencyLevelKey, EventualConsistency)
}

// GetConsistencyLevel returns the level stored in ctx, StrongConsistency if none.
func GetConsistencyLevel(ctx context.Context) ConsistencyLevel {
	if level, ok := ctx.Value(ConsistencyLevelKey).(ConsistencyLevel); ok {
		return level
	}

	return StrongConsistency
}

func (c ConsistencyLevel) String() string {
	switch c {
	case StrongConsistency:
		return "strong"
	case EventualConsistency:
		return "eventual"
	default:
		return "unknown"
	}
}
