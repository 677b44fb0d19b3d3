package abc

import "eamlab/domain/core"

// ABCResult is the posterior produced by a PosteriorMethod: Values holds
// the (adjusted, if the method adjusts) posterior parameter draws, and
// Unadjusted always holds the raw accepted draws before any adjustment.
// Callers read Values preferentially, falling back to Unadjusted.
type ABCResult struct {
	Method     string
	ParamNames []string
	Values     [][]float64 // Npost x P — adjusted if the method adjusts
	Unadjusted [][]float64 // Npost x P — raw accepted draws
}

// Npost reports the number of posterior draws.
func (r *ABCResult) Npost() int { return len(r.Values) }

// PosteriorMethod is the common interface the three ABC variants share.
type PosteriorMethod interface {
	Kind() string
	Run(in *ABCInput) (*ABCResult, error)
}

// Rejection keeps draws within the tol quantile of distance to target
// and returns them verbatim — the unadjusted ABC posterior.
type Rejection struct {
	Tol float64
}

func (Rejection) Kind() string { return "rejection" }

func (m Rejection) Run(in *ABCInput) (*ABCResult, error) {
	if in.N() == 0 {
		return nil, core.New(core.KindEmptyResults, "rejection requires a non-empty draw pool")
	}
	distances := distancesToTarget(in)
	idx, _, err := keepIndices(distances, m.Tol)
	if err != nil {
		return nil, err
	}
	if len(idx) == 0 {
		return nil, core.New(core.KindEmptyResults, "rejection tolerance accepted zero draws")
	}
	kept := gatherRows(in.Param, idx)
	return &ABCResult{
		Method:     m.Kind(),
		ParamNames: in.ParamNames,
		Values:     kept,
		Unadjusted: kept,
	}, nil
}

func gatherRows(rows [][]float64, idx []int) [][]float64 {
	out := make([][]float64, len(idx))
	for i, j := range idx {
		out[i] = append([]float64{}, rows[j]...)
	}
	return out
}
