// Package ids mints opaque identifiers and timestamps for persisted records.
//
// The Generator interface exists so services can be tested with a
// deterministic clock and id sequence instead of the real ULID source.
package ids

import (
	"crypto/rand"
	"time"

	"github.com/oklog/ulid/v2"
)

// Generator supplies unique identifiers and the current instant.
type Generator interface {
	NewID() string
	Now() time.Time
}

// ULIDGenerator mints ULIDs with monotonic entropy and reads the wall clock.
type ULIDGenerator struct{}

func NewGenerator() *ULIDGenerator {
	return &ULIDGenerator{}
}

func (g *ULIDGenerator) NewID() string {
	entropy := ulid.Monotonic(rand.Reader, 0)
	id, err := ulid.New(ulid.Timestamp(time.Now()), entropy)
	if err != nil {
		// ulid.New only fails on exhausted entropy.
		return ulid.Make().String()
	}
	return id.String()
}

func (g *ULIDGenerator) Now() time.Time {
	return time.Now().UTC()
}
