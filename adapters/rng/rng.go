// Package rng implements ports.RNGPort over math/rand, splitting one
// base seed into independent per-chunk streams so a chunk's draws are
// reproducible regardless of which worker goroutine executes it or in
// what order.
package rng

import (
	"context"
	"math/rand"

	"eamlab/domain/core"
	"eamlab/ports"
)

// Adapter is the production ports.RNGPort implementation.
type Adapter struct{}

// New returns an Adapter.
func New() *Adapter { return &Adapter{} }

// SeededStream returns a deterministic stream for a named operation.
func (a *Adapter) SeededStream(ctx context.Context, name string, seed int64) (*rand.Rand, error) {
	return rand.New(rand.NewSource(seed + int64(hashString(name)))), nil
}

// ChunkStream derives a deterministic per-chunk seed from the chunk
// index and base seed alone, so two chunks never collide and the same
// (chunkIdx, baseSeed) always reproduces the same stream regardless of
// worker scheduling order — and, critically, regardless of runID, which
// is freshly minted on every call to SimulationService.Run and therefore
// cannot be part of a reproducible seed. runID is accepted only to match
// ports.RNGPort; it plays no role in the derivation.
func (a *Adapter) ChunkStream(ctx context.Context, runID core.RunID, chunkIdx int, baseSeed int64) (*rand.Rand, error) {
	seed := baseSeed + int64(chunkIdx)*2654435761
	return rand.New(rand.NewSource(seed)), nil
}

var _ ports.RNGPort = (*Adapter)(nil)

func hashString(s string) uint32 {
	var hash uint32 = 5381
	for _, c := range s {
		hash = ((hash << 5) + hash) + uint32(c)
	}
	return hash
}
