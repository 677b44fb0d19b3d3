// Package formula implements the hierarchical formula evaluator.
// Bindings resolve in order against a mutable Environment; each
// expression's result is either realized from a Distribution capability
// (exactly n draws) or recycled from a deterministic vector per the
// length-1/length-n/length-divides-n rule.
package formula

// Env is a name -> vector lookup. Bindings extend it in place as they
// resolve; the final snapshot is the "evaluated bundle" for a
// condition/trial.
type Env map[string][]float64

func (e Env) clone() Env {
	out := make(Env, len(e)+4)
	for k, v := range e {
		out[k] = v
	}
	return out
}

// Get returns the resolved vector for name, or (nil, false).
func (e Env) Get(name string) ([]float64, bool) {
	v, ok := e[name]
	return v, ok
}

// Scalar returns the first element of a resolved binding, convenient for
// kernel code that expects one value per item after env has already been
// shaped to n_items.
func (e Env) Scalar(name string, fallback float64) float64 {
	v, ok := e[name]
	if !ok || len(v) == 0 {
		return fallback
	}
	return v[0]
}
