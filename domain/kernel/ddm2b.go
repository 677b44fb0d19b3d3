package kernel

import "math"

// DDM2BInput is the per-item parameter bundle for the two-boundary
// drift-diffusion kernel (also realizes RDM, LBA — via ZeroNoiseFactory
// — and LFM).
type DDM2BInput struct {
	V, AUpper, ALower, Z, Ndt []float64
	MaxT, Dt                  float64
	MaxReached                int
	Mechanism                 NoiseMechanism
	Noise                     NoiseFunc
}

// SimulateDDM2B is SimulateDDM1B's two-boundary sibling: whichever
// boundary an item reaches first determines Choice (+1 upper, -1 lower).
// Every still-active item gets its diffusion step this tick regardless of
// whether an earlier item_idx also crosses; the same smallest-item_idx
// tie rule picks which single crossing is recorded.
func SimulateDDM2B(in DDM2BInput) ([]Record, error) {
	n := len(in.V)
	if err := validateCommon(n, in.MaxT, in.Dt, in.MaxReached); err != nil {
		return nil, err
	}
	if err := sameLen(n, in.AUpper, in.ALower, in.Z, in.Ndt); err != nil {
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
		var choice int8
		for i := 0; i < n; i++ {
			if !active[i] {
				continue
			}
			eps := in.Noise(1, in.Dt)[0]
			x[i] += stepIncrement(in.Mechanism, in.V[i], x[i], eps, in.Dt)
			switch {
			case x[i] >= in.AUpper[i]:
				if crossed == -1 {
					crossed, choice = i, 1
				}
			case x[i] <= in.ALower[i]:
				if crossed == -1 {
					crossed, choice = i, -1
				}
			}
		}
		if crossed != -1 {
			records = append(records, Record{
				ItemIdx: crossed + 1, RankIdx: len(records) + 1,
				RT: t + ndt[crossed], Choice: choice, HasChoice: true,
			})
			active[crossed] = false
		}
	}
	return records, nil
}
