// Package value implements the distribution interface and the
// Deterministic/Distribution sum type that the formula evaluator
// resolves uniformly.
package value

import "math/rand"

// Distribution is the uniform capability every parameterized sampler
// exposes: draw exactly n i.i.d. values from the RNG stream r.
type Distribution interface {
	Generate(r *rand.Rand, n int) []float64
}

// Value is the sum type App evaluation produces: either a deterministic
// vector (possibly length 1, to be recycled) or a Distribution capability
// to be sampled exactly n times. The evaluator calls Realize uniformly.
type Value interface {
	Realize(r *rand.Rand, n int) ([]float64, error)
}

// Deterministic wraps a fixed vector. Realize returns the raw vector
// unchanged; the formula evaluator then applies the recycling rule
// (length 1 broadcasts, length n is accepted, length k with n%k==0 is
// tiled, anything else is a LengthMismatch carrying the binding name).
type Deterministic []float64

func (d Deterministic) Realize(_ *rand.Rand, _ int) ([]float64, error) {
	return []float64(d), nil
}

// DistributionValue adapts a Distribution into a Value: Realize always
// draws exactly n samples, bypassing the recycling rule entirely (a
// distribution's Generate already returns length n by construction).
type DistributionValue struct {
	Dist Distribution
}

func (dv DistributionValue) Realize(r *rand.Rand, n int) ([]float64, error) {
	return dv.Dist.Generate(r, n), nil
}

// Const is a convenience constructor for a scalar deterministic value.
func Const(x float64) Deterministic { return Deterministic{x} }

// Vec is a convenience constructor for a deterministic vector.
func Vec(xs ...float64) Deterministic { return Deterministic(xs) }

// Draw wraps any Distribution as a Value.
func Draw(d Distribution) Value { return DistributionValue{Dist: d} }
