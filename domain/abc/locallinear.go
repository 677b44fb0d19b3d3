package abc

import (
	"math"

	"eamlab/domain/core"

	"gonum.org/v1/gonum/mat"
)

// LocalLinear applies rejection ABC, then regresses each kept parameter
// column on the (z-scored, kept) summary-statistic columns via weighted
// least squares, and adjusts each kept value toward target — the
// standard local-regression ABC correction (Beaumont et al. 2002).
type LocalLinear struct {
	Tol float64
}

func (LocalLinear) Kind() string { return "local_linear" }

func (m LocalLinear) Run(in *ABCInput) (*ABCResult, error) {
	if in.N() == 0 {
		return nil, core.New(core.KindEmptyResults, "local_linear requires a non-empty draw pool")
	}
	distances := distancesToTarget(in)
	idx, dists, err := keepIndices(distances, m.Tol)
	if err != nil {
		return nil, err
	}
	if len(idx) == 0 {
		return nil, core.New(core.KindEmptyResults, "local_linear tolerance accepted zero draws")
	}

	z, zTarget := zscoreSumstat(in)
	keptSumstat := gatherRows(z, idx)
	keptParam := gatherRows(in.Param, idx)
	weights := epanechnikovWeights(dists)

	adjusted := make([][]float64, len(idx))
	for i := range adjusted {
		adjusted[i] = make([]float64, len(in.ParamNames))
	}
	for p := range in.ParamNames {
		col := make([]float64, len(idx))
		for i := range idx {
			col[i] = keptParam[i][p]
		}
		beta, err := weightedLinearFit(keptSumstat, col, weights)
		if err != nil {
			// degenerate regression (e.g. too few kept draws): fall
			// back to the unadjusted value for this parameter only.
			for i := range idx {
				adjusted[i][p] = keptParam[i][p]
			}
			continue
		}
		predAtTarget := predictLinear(beta, zTarget)
		for i := range idx {
			predAtKept := predictLinear(beta, keptSumstat[i])
			adjusted[i][p] = keptParam[i][p] - predAtKept + predAtTarget
		}
	}

	return &ABCResult{
		Method:     m.Kind(),
		ParamNames: in.ParamNames,
		Values:     adjusted,
		Unadjusted: keptParam,
	}, nil
}

// weightedLinearFit solves the weighted least squares problem
// y ~ beta0 + beta . x, returning [beta0, beta1, ...].
func weightedLinearFit(x [][]float64, y []float64, w []float64) ([]float64, error) {
	n := len(x)
	if n == 0 {
		return nil, core.New(core.KindEmptyResults, "no rows to fit")
	}
	p := len(x[0]) + 1
	data := make([]float64, n*p)
	yData := make([]float64, n)
	for i := 0; i < n; i++ {
		sw := math.Sqrt(w[i])
		data[i*p] = sw
		for j, v := range x[i] {
			data[i*p+1+j] = sw * v
		}
		yData[i] = sw * y[i]
	}
	A := mat.NewDense(n, p, data)
	Y := mat.NewVecDense(n, yData)
	var beta mat.VecDense
	if err := beta.SolveVec(A, Y); err != nil {
		return nil, err
	}
	return append([]float64{}, beta.RawVector().Data...), nil
}

func predictLinear(beta, x []float64) float64 {
	out := beta[0]
	for j, v := range x {
		out += beta[1+j] * v
	}
	return out
}
