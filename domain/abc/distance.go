package abc

import (
	"math"

	"github.com/montanaflynn/stats"
)

func columnStats(rows [][]float64, col int) (mean, sd float64) {
	vals := make([]float64, len(rows))
	for i, r := range rows {
		vals[i] = r[col]
	}
	mean, _ = stats.Mean(vals)
	sd, err := stats.StandardDeviationSample(vals)
	if err != nil || sd == 0 {
		sd = 1
	}
	return mean, sd
}

// zscoreSumstat z-scores every sumstat column using the pool's own
// mean/sd, and applies the same transform to target, so distance is
// computed on a common scale regardless of each statistic's units.
func zscoreSumstat(in *ABCInput) (z [][]float64, zTarget []float64) {
	nCols := len(in.SumstatNames)
	means := make([]float64, nCols)
	sds := make([]float64, nCols)
	for j := 0; j < nCols; j++ {
		means[j], sds[j] = columnStats(in.Sumstat, j)
	}
	z = make([][]float64, len(in.Sumstat))
	for i, row := range in.Sumstat {
		zr := make([]float64, nCols)
		for j, v := range row {
			zr[j] = (v - means[j]) / sds[j]
		}
		z[i] = zr
	}
	zTarget = make([]float64, nCols)
	for j, v := range in.Target {
		zTarget[j] = (v - means[j]) / sds[j]
	}
	return z, zTarget
}

func euclidean(a, b []float64) float64 {
	sum := 0.0
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return math.Sqrt(sum)
}

// distancesToTarget returns, for each draw, its Euclidean distance (on
// z-scored summary columns) to target.
func distancesToTarget(in *ABCInput) []float64 {
	z, zTarget := zscoreSumstat(in)
	out := make([]float64, len(z))
	for i, row := range z {
		out[i] = euclidean(row, zTarget)
	}
	return out
}

// keepIndices returns the indices of draws whose distance falls within
// the tol quantile of all distances (the rejection-ABC acceptance set),
// in their original pool order, plus the distances for every kept row.
func keepIndices(distances []float64, tol float64) ([]int, []float64, error) {
	cutoff, err := stats.Percentile(append([]float64{}, distances...), tol*100)
	if err != nil {
		return nil, nil, err
	}
	type idxDist struct {
		idx int
		d   float64
	}
	var kept []idxDist
	for i, d := range distances {
		if d <= cutoff {
			kept = append(kept, idxDist{i, d})
		}
	}
	idx := make([]int, len(kept))
	ds := make([]float64, len(kept))
	for i, k := range kept {
		idx[i] = k.idx
		ds[i] = k.d
	}
	return idx, ds, nil
}

// epanechnikovWeights returns kernel weights for distances scaled by the
// largest distance in the kept set (the bandwidth), the standard
// Beaumont et al. (2002) weighting scheme for local-regression ABC.
func epanechnikovWeights(distances []float64) []float64 {
	h := 0.0
	for _, d := range distances {
		if d > h {
			h = d
		}
	}
	if h == 0 {
		h = 1
	}
	w := make([]float64, len(distances))
	for i, d := range distances {
		u := d / h
		if u > 1 {
			w[i] = 0
			continue
		}
		w[i] = 0.75 * (1 - u*u)
	}
	return w
}
