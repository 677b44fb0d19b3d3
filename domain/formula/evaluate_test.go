package formula

import (
	"math/rand"
	"testing"

	"eamlab/domain/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluateBindings_ScalarRecycling(t *testing.T) {
	bindings := []Binding{
		{Name: "x", Expr: C(2)},
		{Name: "y", Expr: App{Op: OpAdd, Args: []Expr{Ref("x"), C(1)}}},
	}
	env, err := EvaluateBindings(bindings, Env{}, 3, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 2, 2}, env["x"])
	assert.Equal(t, []float64{3, 3, 3}, env["y"])
}

func TestEvaluateBindings_VectorTiling(t *testing.T) {
	bindings := []Binding{
		{Name: "x", Expr: Const{1, 2}},
		{Name: "y", Expr: App{Op: OpMul, Args: []Expr{Ref("x"), C(10)}}},
	}
	env, err := EvaluateBindings(bindings, Env{}, 4, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 1, 2}, env["x"])
	assert.Equal(t, []float64{10, 20, 10, 20}, env["y"])
}

func TestEvaluateBindings_LengthMismatch(t *testing.T) {
	bindings := []Binding{
		{Name: "x", Expr: Const{1, 2, 3}},
	}
	_, err := EvaluateBindings(bindings, Env{}, 2, rand.New(rand.NewSource(1)))
	require.Error(t, err)
	assert.Equal(t, core.KindLengthMismatch, core.KindOf(err))
}

func TestEvaluateBindings_EmptyListReturnsSeedEnvUnchanged(t *testing.T) {
	seed := Env{"a": {1, 2, 3}}
	env, err := EvaluateBindings(nil, seed, 3, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	assert.Equal(t, seed, env)
}

func TestEvaluateBindings_ShadowsSeedEnv(t *testing.T) {
	seed := Env{"a": {9}}
	bindings := []Binding{{Name: "a", Expr: C(5)}}
	env, err := EvaluateBindings(bindings, seed, 2, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	assert.Equal(t, []float64{5, 5}, env["a"])
}

func TestEvaluateBindings_DrawSamplesExactlyN(t *testing.T) {
	bindings := []Binding{
		{Name: "v", Expr: Draw{Dist: constDist{1}}},
	}
	env, err := EvaluateBindings(bindings, Env{}, 5, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	assert.Len(t, env["v"], 5)
}

// constDist is a trivial Distribution test double that always returns n
// copies of a fixed value, avoiding any dependence on gonum's RNG
// internals for this unit test.
type constDist struct{ x float64 }

func (c constDist) Generate(_ *rand.Rand, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = c.x
	}
	return out
}
