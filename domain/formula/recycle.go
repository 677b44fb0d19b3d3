package formula

import (
	"fmt"

	"eamlab/domain/core"
)

// recycleLen tiles v up to length n, or returns v unchanged if already
// length n. Used both for top-level binding recycling and for aligning
// operands of different lengths inside an expression.
func recycleLen(v []float64, n int) ([]float64, error) {
	k := len(v)
	if k == n {
		return v, nil
	}
	if k == 0 {
		return nil, fmt.Errorf("cannot recycle an empty vector to length %d", n)
	}
	if n%k != 0 {
		return nil, fmt.Errorf("length %d does not divide target length %d", k, n)
	}
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		out[i] = v[i%k]
	}
	return out, nil
}

func broadcastBinary(a, b []float64, f func(float64, float64) float64) ([]float64, error) {
	n := len(a)
	if len(b) > n {
		n = len(b)
	}
	ra, err := recycleLen(a, n)
	if err != nil {
		return nil, err
	}
	rb, err := recycleLen(b, n)
	if err != nil {
		return nil, err
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = f(ra[i], rb[i])
	}
	return out, nil
}

// recycleBinding applies the binding-level recycling rule: length 1
// broadcasts, length n is accepted, length k|n is tiled, anything else is
// LengthMismatch(name, k, n).
func recycleBinding(v []float64, n int, name string) ([]float64, error) {
	k := len(v)
	if k == n {
		return v, nil
	}
	if k == 1 {
		out := make([]float64, n)
		for i := range out {
			out[i] = v[0]
		}
		return out, nil
	}
	if k > 0 && n%k == 0 {
		out := make([]float64, n)
		for i := 0; i < n; i++ {
			out[i] = v[i%k]
		}
		return out, nil
	}
	return nil, core.LengthMismatch(name, k, n)
}
