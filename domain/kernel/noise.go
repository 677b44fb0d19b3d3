package kernel

import (
	"math"
	"math/rand"

	"eamlab/domain/core"
	"eamlab/domain/formula"
)

// NoiseFunc draws count i.i.d. Euler-Maruyama noise increments, already
// scaled for a step of size dt (sigma*sqrt(dt)).
type NoiseFunc func(count int, dt float64) []float64

// NoiseFactory closes over a resolved trial Environment (and the
// worker's RNG stream) to build a NoiseFunc. Constructed once per trial
// by the driver and handed to the kernel.
type NoiseFactory func(env formula.Env, r *rand.Rand) (NoiseFunc, error)

// GaussianNoiseFactory builds additive Gaussian noise with standard
// deviation read from env[sigmaName] (a resolved trial/condition
// binding). config.Build installs GaussianNoiseFactory("sigma") for every
// backend when no factory is configured.
func GaussianNoiseFactory(sigmaName string) NoiseFactory {
	return func(env formula.Env, r *rand.Rand) (NoiseFunc, error) {
		sigma := env.Scalar(sigmaName, 1.0)
		if sigma < 0 {
			return nil, core.New(core.KindConfigInvalid, "noise sigma must be >= 0")
		}
		if r == nil {
			return nil, core.New(core.KindConfigInvalid, "noise factory requires a non-nil RNG stream")
		}
		return func(count int, dt float64) []float64 {
			scale := sigma * math.Sqrt(dt)
			out := make([]float64, count)
			for i := range out {
				out[i] = r.NormFloat64() * scale
			}
			return out
		}, nil
	}
}

// ZeroNoiseFactory realizes the LBA ballistic convention: running the
// two-boundary DDM kernel with a noise callable that always returns
// zeros reproduces deterministic, ballistic (race-to-threshold)
// accumulation — no separate LBA integrator exists.
func ZeroNoiseFactory() NoiseFactory {
	return func(env formula.Env, r *rand.Rand) (NoiseFunc, error) {
		return func(count int, dt float64) []float64 {
			return make([]float64, count)
		}, nil
	}
}
