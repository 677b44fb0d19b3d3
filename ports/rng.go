package ports

import (
	"context"
	"math/rand"

	"eamlab/domain/core"
)

// RNGPort provides seeded, deterministic random number generation for
// the simulation driver and the ABC resampler.
type RNGPort interface {
	// SeededStream returns a deterministic stream for a named operation.
	SeededStream(ctx context.Context, name string, seed int64) (*rand.Rand, error)

	// ChunkStream returns a deterministic stream for one chunk of one
	// run, so the same (chunkIdx, baseSeed) always reproduces the same
	// draws regardless of worker scheduling order or which runID labels
	// the run. runID is accepted for logging/bookkeeping only — an
	// implementation must not fold it into the derived seed, since two
	// runs with an identical baseSeed are expected to draw identical
	// streams.
	ChunkStream(ctx context.Context, runID core.RunID, chunkIdx int, baseSeed int64) (*rand.Rand, error)
}
