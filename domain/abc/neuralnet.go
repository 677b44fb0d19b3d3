package abc

import (
	"math"
	"math/rand"

	"eamlab/domain/core"
)

// NeuralNet applies rejection ABC, then adjusts each kept parameter
// value with a single-hidden-layer MLP fit by a small fixed number of
// weighted batch gradient-descent steps, instead of LocalLinear's linear
// regression. Deliberately simple: this stands in for an external
// posterior-adjustment collaborator, not a general deep-learning
// subsystem.
type NeuralNet struct {
	Tol    float64
	Hidden int
}

func (NeuralNet) Kind() string { return "neural_net" }

const (
	neuralNetIterations   = 300
	neuralNetLearningRate = 0.05
	neuralNetInitSeed     = 42
)

func (m NeuralNet) Run(in *ABCInput) (*ABCResult, error) {
	if in.N() == 0 {
		return nil, core.New(core.KindEmptyResults, "neural_net requires a non-empty draw pool")
	}
	hidden := m.Hidden
	if hidden <= 0 {
		hidden = 4
	}

	distances := distancesToTarget(in)
	idx, dists, err := keepIndices(distances, m.Tol)
	if err != nil {
		return nil, err
	}
	if len(idx) == 0 {
		return nil, core.New(core.KindEmptyResults, "neural_net tolerance accepted zero draws")
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
		net := newMLP(len(in.SumstatNames), hidden, rand.New(rand.NewSource(neuralNetInitSeed+int64(p))))
		net.train(keptSumstat, col, weights, neuralNetIterations, neuralNetLearningRate)
		predAtTarget := net.predict(zTarget)
		for i := range idx {
			predAtKept := net.predict(keptSumstat[i])
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

// mlp is a single-hidden-layer, single-output network with tanh hidden
// activations and a linear output unit.
type mlp struct {
	w1 [][]float64 // hidden x inputDim
	b1 []float64   // hidden
	w2 []float64   // hidden
	b2 float64
}

func newMLP(inputDim, hidden int, r *rand.Rand) *mlp {
	w1 := make([][]float64, hidden)
	for j := range w1 {
		row := make([]float64, inputDim)
		for k := range row {
			row[k] = (r.Float64()*2 - 1) * 0.3
		}
		w1[j] = row
	}
	w2 := make([]float64, hidden)
	for j := range w2 {
		w2[j] = (r.Float64()*2 - 1) * 0.3
	}
	return &mlp{w1: w1, b1: make([]float64, hidden), w2: w2, b2: 0}
}

func (n *mlp) forward(x []float64) (out float64, hAct []float64) {
	hAct = make([]float64, len(n.w1))
	for j, row := range n.w1 {
		pre := n.b1[j]
		for k, v := range row {
			pre += v * x[k]
		}
		hAct[j] = math.Tanh(pre)
	}
	out = n.b2
	for j, a := range hAct {
		out += n.w2[j] * a
	}
	return out, hAct
}

func (n *mlp) predict(x []float64) float64 {
	out, _ := n.forward(x)
	return out
}

func (n *mlp) train(x [][]float64, y, weights []float64, iterations int, lr float64) {
	hidden := len(n.w1)
	inputDim := len(n.w1[0])
	totalWeight := 0.0
	for _, w := range weights {
		totalWeight += w
	}
	if totalWeight == 0 {
		totalWeight = float64(len(weights))
	}

	for iter := 0; iter < iterations; iter++ {
		gw1 := make([][]float64, hidden)
		for j := range gw1 {
			gw1[j] = make([]float64, inputDim)
		}
		gb1 := make([]float64, hidden)
		gw2 := make([]float64, hidden)
		gb2 := 0.0

		for i, xi := range x {
			out, hAct := n.forward(xi)
			werr := weights[i] * (out - y[i])
			gb2 += werr
			for j, a := range hAct {
				gw2[j] += werr * a
				dHidden := werr * n.w2[j] * (1 - a*a)
				gb1[j] += dHidden
				for k, v := range xi {
					gw1[j][k] += dHidden * v
				}
			}
		}

		scale := lr / totalWeight
		n.b2 -= scale * gb2
		for j := range n.w2 {
			n.w2[j] -= scale * gw2[j]
			n.b1[j] -= scale * gb1[j]
			for k := range n.w1[j] {
				n.w1[j][k] -= scale * gw1[j][k]
			}
		}
	}
}
