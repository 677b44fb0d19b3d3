package kernel

import "math"

// LCAGIInput is the per-item parameter bundle for the leaky competing
// accumulator with global inhibition: dx_i = (V_i − β_i·x_i −
// k_i·Σ_{j active}x_j)·dt + dW_i, per the glossary definition — the sum
// runs over all currently active accumulators, including i itself.
type LCAGIInput struct {
	V, A, Beta, K, Z, Ndt []float64
	MaxT, Dt              float64
	MaxReached            int
	Mechanism             NoiseMechanism
	Noise                 NoiseFunc
}

// SimulateLCAGI runs the multi-accumulator leak+inhibition loop. Noise
// is drawn once per step as a vector of length n_active (one draw per
// currently-active accumulator), unlike the DDM kernels' per-item scalar
// draw.
func SimulateLCAGI(in LCAGIInput) ([]Record, error) {
	n := len(in.V)
	if err := validateCommon(n, in.MaxT, in.Dt, in.MaxReached); err != nil {
		return nil, err
	}
	if err := sameLen(n, in.A, in.Beta, in.K, in.Z, in.Ndt); err != nil {
		return nil, err
	}
	z := zerosIfNil(in.Z, n)
	ndt := zerosIfNil(in.Ndt, n)
	beta := zerosIfNil(in.Beta, n)
	k := zerosIfNil(in.K, n)

	x := make([]float64, n)
	copy(x, z)
	active := make([]bool, n)
	for i := range active {
		active[i] = true
	}

	var records []Record
	nSteps := int(math.Floor(in.MaxT/in.Dt + 1e-9))
	for step := 1; step <= nSteps && len(records) < in.MaxReached; step++ {
		t := float64(step) * in.Dt

		activeIdx := make([]int, 0, n)
		sumX := 0.0
		for i := 0; i < n; i++ {
			if active[i] {
				activeIdx = append(activeIdx, i)
				sumX += x[i]
			}
		}
		if len(activeIdx) == 0 {
			break
		}
		eps := in.Noise(len(activeIdx), in.Dt)

		// Every active accumulator updates synchronously (the shared
		// inhibition term requires it); only the smallest item_idx that
		// crossed this step is recorded, per the one-crossing-per-step
		// tie rule.
		crossed := -1
		for pos, i := range activeIdx {
			drift := in.V[i] - beta[i]*x[i] - k[i]*sumX
			x[i] += stepIncrement(in.Mechanism, drift, x[i], eps[pos], in.Dt)
			if x[i] >= in.A[i] && crossed == -1 {
				crossed = i
			}
		}
		if crossed != -1 {
			records = append(records, Record{
				ItemIdx: crossed + 1,
				RankIdx: len(records) + 1,
				RT:      t + ndt[crossed],
			})
			active[crossed] = false
		}
	}
	return records, nil
}
