package kernel

import "math"

// DDM1BInput is the per-item parameter bundle for the single-boundary
// (upper-hit only) drift-diffusion kernel. Every slice has length
// n_items; Z and Ndt default to all-zero when nil.
type DDM1BInput struct {
	V, A, Z, Ndt []float64
	MaxT, Dt     float64
	MaxReached   int
	Mechanism    NoiseMechanism
	Noise        NoiseFunc
}

// SimulateDDM1B runs the per-timestep Euler-Maruyama loop for the "ddm"
// backend. Items that never cross A before MaxT produce no record. Every
// still-active item gets its diffusion step this tick regardless of
// whether an earlier item_idx also crosses; only the smallest item_idx
// that crossed is recorded, and any other item that would also have
// crossed this step is simply re-evaluated (with a fresh noise draw) on
// the next step — a documented dt-resolution artifact, not a bug.
func SimulateDDM1B(in DDM1BInput) ([]Record, error) {
	n := len(in.V)
	if err := validateCommon(n, in.MaxT, in.Dt, in.MaxReached); err != nil {
		return nil, err
	}
	if err := sameLen(n, in.A, in.Z, in.Ndt); err != nil {
		return nil, err
	}
	z := zerosIfNil(in.Z, n)
	ndt := zerosIfNil(in.Ndt, n)

	x := make([]float64, n)
	copy(x, z)
	active := make([]bool, n)
	for i := range active {
		active[i] = true
	}

	var records []Record
	nSteps := int(math.Floor(in.MaxT/in.Dt + 1e-9))
	for k := 1; k <= nSteps && len(records) < in.MaxReached; k++ {
		t := float64(k) * in.Dt

		crossed := -1
		for i := 0; i < n; i++ {
			if !active[i] {
				continue
			}
			eps := in.Noise(1, in.Dt)[0]
			x[i] += stepIncrement(in.Mechanism, in.V[i], x[i], eps, in.Dt)
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
