package scalars

import "github.com/google/uuid"

// ID is the GraphQL ID scalar. AppSync serializes it as an opaque string;
// any non-empty string round-trips unchanged.
type ID string

// NewID returns a fresh random ID (a UUIDv4 string).
func NewID() ID {
	return ID(uuid.NewString())
}

func (id ID) String() string { return string(id) }
