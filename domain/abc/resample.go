package abc

import (
	"fmt"
	"math/rand"

	"eamlab/domain/core"

	"github.com/montanaflynn/stats"
)

// Resample runs method n_iterations times, each time drawing n_samples
// rows (with or without replacement) from the full draw pool and
// re-running the posterior method against that sub-pool.
//
// With replace = false and n_samples > N this is a hard
// ResampleSizeExceeded error. With replace = true it is not an error —
// sampling with replacement never runs out of rows — but the original
// implementation's "warn and continue" behavior is preserved here via
// the returned warning string (empty when none applies).
func Resample(method PosteriorMethod, in *ABCInput, nIterations, nSamples int, replace bool, r *rand.Rand) ([]*ABCResult, string, error) {
	n := in.N()
	if !replace && nSamples > n {
		return nil, "", core.ResampleSizeExceeded(nSamples, n)
	}
	warning := ""
	if replace && nSamples > n {
		warning = fmt.Sprintf("resample_abc: n_samples=%d exceeds pool size=%d with replace=true", nSamples, n)
	}

	results := make([]*ABCResult, nIterations)
	for iter := 0; iter < nIterations; iter++ {
		idx := sampleIndices(n, nSamples, replace, r)
		sub := &ABCInput{
			ParamNames:   in.ParamNames,
			SumstatNames: in.SumstatNames,
			Target:       in.Target,
			Param:        gatherRows(in.Param, idx),
			Sumstat:      gatherRows(in.Sumstat, idx),
		}
		res, err := method.Run(sub)
		if err != nil {
			return nil, warning, err
		}
		results[iter] = res
	}
	return results, warning, nil
}

func sampleIndices(n, k int, replace bool, r *rand.Rand) []int {
	if replace {
		idx := make([]int, k)
		for i := range idx {
			idx[i] = r.Intn(n)
		}
		return idx
	}
	perm := r.Perm(n)
	if k > n {
		k = n
	}
	return perm[:k]
}

// Bootstrap draws n_samples rows (uniformly, with or without
// replacement) from result's posterior array. With replace = false,
// n_samples must not exceed the posterior size.
func Bootstrap(result *ABCResult, nSamples int, replace bool, r *rand.Rand) ([][]float64, error) {
	n := result.Npost()
	if !replace && nSamples > n {
		return nil, core.ResampleSizeExceeded(nSamples, n)
	}
	idx := sampleIndices(n, nSamples, replace, r)
	return gatherRows(result.Values, idx), nil
}

// ResampleMedianRow is one parameter's row of SummariseResampleMedians'
// output table.
type ResampleMedianRow struct {
	Param  string
	Mean   float64
	Median float64
	CILo   float64
	CIHi   float64
}

// ResampleMedianTable is the output of SummariseResampleMedians: one row
// per parameter, carrying the confidence level the bounds were computed
// at plus the two quantile probabilities (QLo, QHi) those bounds sit at —
// e.g. 0.025/0.975 for CILevel=0.95 — so a renderer can label the bound
// columns with the quantile literally rather than a generic "ci_lo".
type ResampleMedianTable struct {
	CILevel  float64
	QLo, QHi float64
	Rows     []ResampleMedianRow
}

// QuantileColumnNames returns the literal quantile-labeled column names
// for table's lower and upper bounds, e.g. "q_0.025"/"q_0.975".
func (t *ResampleMedianTable) QuantileColumnNames() (lo, hi string) {
	return fmt.Sprintf("q_%.10g", t.QLo), fmt.Sprintf("q_%.10g", t.QHi)
}

// SummariseResampleMedians computes, for each parameter, the per-
// iteration posterior median across results, then summarizes that
// K-length vector of medians with its mean, its own median, and two
// symmetric quantile bounds at (1-ci_level)/2 and 1-(1-ci_level)/2.
func SummariseResampleMedians(results []*ABCResult, ciLevel float64) (*ResampleMedianTable, error) {
	if len(results) == 0 {
		return nil, core.New(core.KindEmptyResults, "summarise_resample_medians requires at least one result")
	}
	paramNames := results[0].ParamNames
	lowerQ := (1 - ciLevel) / 2
	upperQ := 1 - lowerQ
	table := &ResampleMedianTable{CILevel: ciLevel, QLo: lowerQ, QHi: upperQ}

	for p, name := range paramNames {
		medians := make([]float64, len(results))
		for i, res := range results {
			col := make([]float64, res.Npost())
			for j, row := range res.Values {
				col[j] = row[p]
			}
			med, err := stats.Median(col)
			if err != nil {
				return nil, core.Wrap(core.KindIOError, "computing per-iteration median", err)
			}
			medians[i] = med
		}
		mean, _ := stats.Mean(medians)
		median, _ := stats.Median(medians)
		lowerP := lowerQ * 100
		upperP := upperQ * 100
		lo, err := stats.Percentile(append([]float64{}, medians...), lowerP)
		if err != nil {
			lo = median
		}
		hi, err := stats.Percentile(append([]float64{}, medians...), upperP)
		if err != nil {
			hi = median
		}
		table.Rows = append(table.Rows, ResampleMedianRow{
			Param:  name,
			Mean:   mean,
			Median: median,
			CILo:   lo,
			CIHi:   hi,
		})
	}
	return table, nil
}
