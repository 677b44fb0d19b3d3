package formula

import (
	"math/rand"

	"eamlab/domain/core"
	"eamlab/domain/value"
)

// Binding is a single (name, expression) pair — one line of a formula
// tier.
type Binding struct {
	Name string
	Expr Expr
}

// EvaluateBindings resolves an ordered list of bindings against seedEnv,
// drawing exactly n samples for any binding whose expression is a
// Distribution, and recycling deterministic results to length n. Returns
// the merged environment: seedEnv updated with every resolved binding,
// observed by later bindings in the same call. An empty binding list
// returns a copy of seedEnv unchanged.
func EvaluateBindings(bindings []Binding, seedEnv Env, n int, r *rand.Rand) (Env, error) {
	if n < 1 {
		return nil, core.New(core.KindConfigInvalid, "n must be >= 1")
	}
	env := seedEnv.clone()
	for _, b := range bindings {
		val, err := b.Expr.Eval(env)
		if err != nil {
			return nil, core.Wrap(core.KindConfigInvalid, "evaluating binding "+b.Name, err)
		}
		vec, err := realize(val, n, b.Name, r)
		if err != nil {
			return nil, err
		}
		env[b.Name] = vec
	}
	return env, nil
}

// realize implements the two-branch contract: a Distribution capability
// is sampled exactly n times; anything else is a deterministic vector
// subject to the recycling rule.
func realize(v value.Value, n int, name string, r *rand.Rand) ([]float64, error) {
	if dv, ok := v.(value.DistributionValue); ok {
		if r == nil {
			return nil, core.New(core.KindConfigInvalid, "binding "+name+" draws from a distribution but no RNG stream was supplied")
		}
		return dv.Dist.Generate(r, n), nil
	}
	raw, err := v.Realize(r, n)
	if err != nil {
		return nil, err
	}
	return recycleBinding(raw, n, name)
}
