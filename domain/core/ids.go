package core

import (
	"time"

	"github.com/google/uuid"
)

// RunID identifies one invocation of the simulation driver.
type RunID string

// NewRunID creates a time-ordered run identifier.
func NewRunID() RunID {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return RunID(id.String())
}

// Hash is a content fingerprint, used for config hashes and dataset
// fingerprints.
type Hash string

func (h Hash) String() string { return string(h) }

// Timestamp is a UTC instant, kept as its own type so persistence
// adapters can format it consistently.
type Timestamp time.Time

func Now() Timestamp { return Timestamp(time.Now().UTC()) }

func (t Timestamp) Time() time.Time { return time.Time(t) }
