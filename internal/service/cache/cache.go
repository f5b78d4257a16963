package cache

import (
	"context"
	"time"
)

// Entry is an immutable cached payload stamped with its creation time.
type Entry struct {
	Payload   []byte    `json:"payload"`
	CreatedAt time.Time `json:"createdAt"`
}

// State of a key as seen by a reader at a given instant.
type State int

const (
	Absent State = iota
	Fresh
	Stale
)

func (s State) String() string {
	switch s {
	case Fresh:
		return "fresh"
	case Stale:
		return "stale"
	default:
		return "absent"
	}
}

// SecondTier is a shared store behind the in-process map. Implementations
// must keep the entry's original CreatedAt.
type SecondTier interface {
	Get(ctx context.Context, key string) (Entry, bool, error)
	Set(ctx context.Context, key string, e Entry, ttl time.Duration) error
}
