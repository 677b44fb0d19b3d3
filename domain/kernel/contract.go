// Package kernel implements the noise-function factory and the
// Euler-Maruyama integrator kernels for ddm_1b, ddm_2b, and lca_gi.
package kernel

import (
	"fmt"
	"math"
	"strings"

	"eamlab/domain/core"
)

// NoiseMechanism is the noise/dt coupling mode.
type NoiseMechanism string

const (
	Add          NoiseMechanism = "add"
	MultEvidence NoiseMechanism = "mult_evidence"
	MultT        NoiseMechanism = "mult_t"
)

// NormalizeMechanism validates and normalizes a user-supplied mechanism
// string, treating "mult" as an alias for "mult_evidence".
func NormalizeMechanism(s string) (NoiseMechanism, error) {
	switch strings.ToLower(s) {
	case "add":
		return Add, nil
	case "mult", "mult_evidence":
		return MultEvidence, nil
	case "mult_t":
		return MultT, nil
	default:
		return "", core.New(core.KindConfigInvalid, fmt.Sprintf("unknown noise_mechanism %q", s))
	}
}

// stepIncrement applies the noise/dt coupling arithmetic: eps is one
// Euler-Maruyama noise draw already scaled by sigma*sqrt(dt) (see
// GaussianNoiseFactory); mult_t applies an additional sqrt(dt) scale
// rather than a clean derivation.
func stepIncrement(mech NoiseMechanism, v, x, eps, dt float64) float64 {
	drift := v * dt
	switch mech {
	case MultEvidence:
		return drift + x*eps
	case MultT:
		return drift + eps*math.Sqrt(dt)
	default: // Add
		return drift + eps
	}
}

// Record is one boundary-crossing event produced by a kernel.
type Record struct {
	ItemIdx   int     // 1-based item index (which accumulator)
	RankIdx   int     // 1-based order of crossing within the trial
	RT        float64 // crossing time including non-decision time
	Choice    int8    // +1 upper / -1 lower; meaningless unless HasChoice
	HasChoice bool
}

func validateCommon(n int, maxT, dt float64, maxReached int) error {
	if n <= 0 {
		return core.New(core.KindInvalidKernelInput, "no items supplied")
	}
	if maxT <= 0 {
		return core.New(core.KindInvalidKernelInput, "max_t must be > 0")
	}
	if dt <= 0 {
		return core.New(core.KindInvalidKernelInput, "dt must be > 0")
	}
	if maxReached < 1 || maxReached > n {
		return core.New(core.KindInvalidKernelInput, fmt.Sprintf("max_reached=%d out of range [1,%d]", maxReached, n))
	}
	return nil
}

func sameLen(n int, vecs ...[]float64) error {
	for _, v := range vecs {
		if v != nil && len(v) != n {
			return core.New(core.KindInvalidKernelInput, fmt.Sprintf("parameter vector has length %d, expected %d", len(v), n))
		}
	}
	return nil
}

func zerosIfNil(v []float64, n int) []float64 {
	if v != nil {
		return v
	}
	return make([]float64, n)
}
