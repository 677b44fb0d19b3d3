package formula

import (
	"fmt"
	"math"

	"eamlab/domain/core"
	"eamlab/domain/value"
)

// Expr is the closed AST of the DSL: Const, Ref, App, Call, Draw, UserFn. Eval
// never touches the RNG directly — distribution sampling is deferred to
// the binding-level evaluator, which knows n.
type Expr interface {
	Eval(env Env) (value.Value, error)
}

// Const is a literal vector (often length 1).
type Const []float64

func (c Const) Eval(Env) (value.Value, error) { return value.Deterministic(c), nil }

// C is a convenience constructor for a scalar Const.
func C(x float64) Const { return Const{x} }

// Ref looks up a previously resolved name (from seed_env or an earlier
// binding in the same tier).
type Ref string

func (r Ref) Eval(env Env) (value.Value, error) {
	v, ok := env[string(r)]
	if !ok {
		return nil, core.New(core.KindConfigInvalid, fmt.Sprintf("reference to unresolved name %q", string(r)))
	}
	return value.Deterministic(v), nil
}

// Op enumerates the fixed elementwise operator set the DSL supports.
type Op string

const (
	OpAdd Op = "+"
	OpSub Op = "-"
	OpMul Op = "*"
	OpDiv Op = "/"
	OpPow Op = "^"
	OpNeg Op = "neg"
)

// App applies an elementwise operator to its (already-evaluated) vector
// arguments, recycling shorter operands per the same rule used for
// top-level bindings.
type App struct {
	Op   Op
	Args []Expr
}

func (a App) Eval(env Env) (value.Value, error) {
	vecs, err := evalDeterministicAll(env, a.Args)
	if err != nil {
		return nil, err
	}
	if a.Op == OpNeg {
		if len(vecs) != 1 {
			return nil, core.New(core.KindConfigInvalid, "neg takes exactly one argument")
		}
		out := make([]float64, len(vecs[0]))
		for i, x := range vecs[0] {
			out[i] = -x
		}
		return value.Deterministic(out), nil
	}
	if len(vecs) != 2 {
		return nil, core.New(core.KindConfigInvalid, fmt.Sprintf("operator %q takes exactly two arguments", a.Op))
	}
	f, err := binaryFunc(a.Op)
	if err != nil {
		return nil, err
	}
	out, err := broadcastBinary(vecs[0], vecs[1], f)
	if err != nil {
		return nil, err
	}
	return value.Deterministic(out), nil
}

func binaryFunc(op Op) (func(float64, float64) float64, error) {
	switch op {
	case OpAdd:
		return func(a, b float64) float64 { return a + b }, nil
	case OpSub:
		return func(a, b float64) float64 { return a - b }, nil
	case OpMul:
		return func(a, b float64) float64 { return a * b }, nil
	case OpDiv:
		return func(a, b float64) float64 { return a / b }, nil
	case OpPow:
		return math.Pow, nil
	default:
		return nil, core.New(core.KindConfigInvalid, fmt.Sprintf("unknown operator %q", op))
	}
}

// Call applies one of the DSL's named built-ins: exp, log, sqrt, abs,
// min, max, ifelse(cond, a, b).
type Call struct {
	Name string
	Args []Expr
}

func (c Call) Eval(env Env) (value.Value, error) {
	vecs, err := evalDeterministicAll(env, c.Args)
	if err != nil {
		return nil, err
	}
	switch c.Name {
	case "exp", "log", "sqrt", "abs":
		if len(vecs) != 1 {
			return nil, core.New(core.KindConfigInvalid, fmt.Sprintf("%s takes exactly one argument", c.Name))
		}
		f := map[string]func(float64) float64{
			"exp": math.Exp, "log": math.Log, "sqrt": math.Sqrt, "abs": math.Abs,
		}[c.Name]
		out := make([]float64, len(vecs[0]))
		for i, x := range vecs[0] {
			out[i] = f(x)
		}
		return value.Deterministic(out), nil
	case "min", "max":
		if len(vecs) != 2 {
			return nil, core.New(core.KindConfigInvalid, fmt.Sprintf("%s takes exactly two arguments", c.Name))
		}
		f := math.Min
		if c.Name == "max" {
			f = math.Max
		}
		out, err := broadcastBinary(vecs[0], vecs[1], f)
		if err != nil {
			return nil, err
		}
		return value.Deterministic(out), nil
	case "ifelse":
		if len(vecs) != 3 {
			return nil, core.New(core.KindConfigInvalid, "ifelse takes exactly three arguments (cond, a, b)")
		}
		n := len(vecs[1])
		if len(vecs[2]) > n {
			n = len(vecs[2])
		}
		if len(vecs[0]) > n {
			n = len(vecs[0])
		}
		cond, err := recycleLen(vecs[0], n)
		if err != nil {
			return nil, err
		}
		a, err := recycleLen(vecs[1], n)
		if err != nil {
			return nil, err
		}
		b, err := recycleLen(vecs[2], n)
		if err != nil {
			return nil, err
		}
		out := make([]float64, n)
		for i := range out {
			if cond[i] != 0 {
				out[i] = a[i]
			} else {
				out[i] = b[i]
			}
		}
		return value.Deterministic(out), nil
	default:
		return nil, core.New(core.KindConfigInvalid, fmt.Sprintf("unknown built-in %q", c.Name))
	}
}

// Draw evaluates to a Distribution capability; the binding-level
// evaluator samples it exactly n times, bypassing recycling entirely.
type Draw struct {
	Dist value.Distribution
}

func (d Draw) Eval(Env) (value.Value, error) {
	return value.DistributionValue{Dist: d.Dist}, nil
}

// UserFn is the escape hatch for user-supplied deterministic vector
// operations (e.g. a custom item-formula post-processing step). It is
// never the vehicle for noise sampling — that lives in the kernel's noise
// factory, which closes over a resolved Environment directly.
type UserFn struct {
	Name string
	Fn   func(args [][]float64) ([]float64, error)
	Args []Expr
}

func (u UserFn) Eval(env Env) (value.Value, error) {
	vecs, err := evalDeterministicAll(env, u.Args)
	if err != nil {
		return nil, err
	}
	out, err := u.Fn(vecs)
	if err != nil {
		return nil, core.Wrap(core.KindConfigInvalid, fmt.Sprintf("user function %q failed", u.Name), err)
	}
	return value.Deterministic(out), nil
}

func evalDeterministicAll(env Env, args []Expr) ([][]float64, error) {
	out := make([][]float64, len(args))
	for i, arg := range args {
		v, err := arg.Eval(env)
		if err != nil {
			return nil, err
		}
		raw, err := asDeterministic(v)
		if err != nil {
			return nil, err
		}
		out[i] = raw
	}
	return out, nil
}

// asDeterministic rejects a bare Distribution nested inside an
// expression: a Draw must be the entire right-hand side of a binding, not
// an operand of arithmetic, since sampling needs n from the binding
// context.
func asDeterministic(v value.Value) ([]float64, error) {
	if _, ok := v.(value.DistributionValue); ok {
		return nil, core.New(core.KindConfigInvalid, "a distribution expression must be the entire right-hand side of a binding, not nested inside arithmetic")
	}
	raw, err := v.Realize(nil, 0)
	if err != nil {
		return nil, err
	}
	return raw, nil
}
