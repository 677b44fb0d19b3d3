package summary

import (
	"fmt"
	"sort"

	"github.com/montanaflynn/stats"
)

// AggResult is what an Aggregation.Compute produces for one group: either
// a single scalar, or a named vector (column suffixed by element name),
// or an unnamed vector (column suffixed by positional index).
type AggResult struct {
	Scalar  *float64
	Named   map[string]float64
	Unnamed []float64
}

// Columns expands a result into its final (possibly suffixed) column
// names, keyed off the aggregation's own name.
func (r AggResult) Columns(name string) map[string]float64 {
	out := map[string]float64{}
	switch {
	case r.Scalar != nil:
		out[name] = *r.Scalar
	case r.Named != nil:
		keys := make([]string, 0, len(r.Named))
		for k := range r.Named {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			out[fmt.Sprintf("%s_%s", name, k)] = r.Named[k]
		}
	default:
		for i, v := range r.Unnamed {
			out[fmt.Sprintf("%s_%d", name, i+1)] = v
		}
	}
	return out
}

// Aggregation is one named column expression within an Atom, e.g.
// mean_rt = mean(rt).
type Aggregation struct {
	Name    string
	Compute func(rows Table) AggResult
}

func column(rows Table, col string) []float64 {
	out := make([]float64, 0, len(rows))
	for _, r := range rows {
		v, ok := r[col]
		if !ok {
			continue
		}
		if f, ok := toFloat(v); ok {
			out = append(out, f)
		}
	}
	return out
}

func toFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	}
	return 0, false
}

func scalar(v float64) AggResult { return AggResult{Scalar: &v} }

// Mean builds an aggregation computing the arithmetic mean of col.
func Mean(col string) Aggregation {
	return Aggregation{Compute: func(rows Table) AggResult {
		vals, err := stats.Mean(column(rows, col))
		if err != nil {
			vals = 0
		}
		return scalar(vals)
	}}
}

// Median builds an aggregation computing the median of col.
func Median(col string) Aggregation {
	return Aggregation{Compute: func(rows Table) AggResult {
		vals, err := stats.Median(column(rows, col))
		if err != nil {
			vals = 0
		}
		return scalar(vals)
	}}
}

// SD builds an aggregation computing the sample standard deviation of
// col.
func SD(col string) Aggregation {
	return Aggregation{Compute: func(rows Table) AggResult {
		vals, err := stats.StandardDeviationSample(column(rows, col))
		if err != nil {
			vals = 0
		}
		return scalar(vals)
	}}
}

// Count builds an aggregation counting the rows in the group.
func Count() Aggregation {
	return Aggregation{Compute: func(rows Table) AggResult {
		return scalar(float64(len(rows)))
	}}
}

// ProportionWhere builds an aggregation computing the fraction of rows
// for which pred holds — used for e.g. choice-rate summaries.
func ProportionWhere(pred func(Row) bool) Aggregation {
	return Aggregation{Compute: func(rows Table) AggResult {
		if len(rows) == 0 {
			return scalar(0)
		}
		n := 0
		for _, r := range rows {
			if pred(r) {
				n++
			}
		}
		return scalar(float64(n) / float64(len(rows)))
	}}
}

// Quantiles builds an aggregation computing col's value at each of the
// given probabilities, producing one named column per probability
// (e.g. "_q_0.1", "_q_0.9").
func Quantiles(col string, probs []float64) Aggregation {
	return Aggregation{Compute: func(rows Table) AggResult {
		vals := column(rows, col)
		named := make(map[string]float64, len(probs))
		for _, p := range probs {
			q, err := stats.Percentile(vals, p*100)
			if err != nil {
				q = 0
			}
			named[fmt.Sprintf("q_%g", p)] = q
		}
		return AggResult{Named: named}
	}}
}

func named(name string, a Aggregation) Aggregation {
	a.Name = name
	return a
}

// Named attaches a column name to an Aggregation built by one of the
// constructors above, e.g. Named("mean_rt", Mean("rt")).
func Named(name string, a Aggregation) Aggregation { return named(name, a) }
