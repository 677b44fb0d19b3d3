// Package abc implements aligning simulation output against a target into
// an ABCInput, running the three local posterior-adjustment methods, and
// the resample/bootstrap wrappers around them.
package abc

import (
	"fmt"

	"eamlab/domain/core"
)

// ABCInput holds the three congruent matrices run_abc needs: target is a
// length-S vector aligned column-wise with sumstat; param is N×P aligned
// row-wise with sumstat.
type ABCInput struct {
	ParamNames   []string
	Param        [][]float64 // N x P
	SumstatNames []string
	Sumstat      [][]float64 // N x S
	Target       []float64   // length S, aligned with SumstatNames
}

// N reports the number of simulated draws in the input.
func (in *ABCInput) N() int { return len(in.Param) }

// Build aligns paramRows and sumstatRows (one map per simulated draw,
// row-aligned) and a target map into an ABCInput with a fixed column
// order. paramNames/sumstatNames fix the output column order; every row
// must carry every named column.
func Build(paramNames []string, paramRows []map[string]float64, sumstatNames []string, sumstatRows []map[string]float64, target map[string]float64) (*ABCInput, error) {
	if len(paramRows) != len(sumstatRows) {
		return nil, core.New(core.KindConfigInvalid, fmt.Sprintf("param rows (%d) and sumstat rows (%d) must be row-aligned", len(paramRows), len(sumstatRows)))
	}
	if len(paramRows) == 0 {
		return nil, core.New(core.KindEmptyResults, "abc input requires at least one simulated draw")
	}

	in := &ABCInput{
		ParamNames:   paramNames,
		SumstatNames: sumstatNames,
		Param:        make([][]float64, len(paramRows)),
		Sumstat:      make([][]float64, len(sumstatRows)),
		Target:       make([]float64, len(sumstatNames)),
	}
	for i, row := range paramRows {
		vals := make([]float64, len(paramNames))
		for j, name := range paramNames {
			v, ok := row[name]
			if !ok {
				return nil, core.New(core.KindConfigInvalid, fmt.Sprintf("param row %d missing column %q", i, name))
			}
			vals[j] = v
		}
		in.Param[i] = vals
	}
	for i, row := range sumstatRows {
		vals := make([]float64, len(sumstatNames))
		for j, name := range sumstatNames {
			v, ok := row[name]
			if !ok {
				return nil, core.New(core.KindConfigInvalid, fmt.Sprintf("sumstat row %d missing column %q", i, name))
			}
			vals[j] = v
		}
		in.Sumstat[i] = vals
	}
	for j, name := range sumstatNames {
		v, ok := target[name]
		if !ok {
			return nil, core.New(core.KindConfigInvalid, fmt.Sprintf("target missing column %q", name))
		}
		in.Target[j] = v
	}
	return in, nil
}
