// Package summary implements a composable, build-once/apply-many
// summary-statistic specification with grouped aggregation and a
// pivot-wider step.
package summary

import "fmt"

// Row is one row of raw input data: an arbitrary set of named columns.
// Values are float64 for numeric columns the aggregations consume, or
// any comparable value (string, int, float64) for grouping columns.
type Row map[string]any

// Table is raw tabular input to a SummaryStatSpec.
type Table []Row

// AppliedRow is one output row after grouping, aggregation and pivot:
// Identifiers holds the wider_by key values; Values holds the (already
// suffixed) numeric value columns.
type AppliedRow struct {
	Identifiers map[string]any
	Values      map[string]float64
}

// AppliedTable is the result of applying a spec to data: a wide table
// carrying its wider_by metadata.
type AppliedTable struct {
	WiderBy []string
	Rows    []*AppliedRow
}

func keyString(vals map[string]any, keys []string) string {
	s := ""
	for _, k := range keys {
		s += fmt.Sprintf("\x1f%s=%v", k, vals[k])
	}
	return s
}

func projectKeys(vals map[string]any, keys []string) map[string]any {
	out := make(map[string]any, len(keys))
	for _, k := range keys {
		out[k] = vals[k]
	}
	return out
}

func subtract(all, remove []string) []string {
	skip := make(map[string]bool, len(remove))
	for _, k := range remove {
		skip[k] = true
	}
	var out []string
	for _, k := range all {
		if !skip[k] {
			out = append(out, k)
		}
	}
	return out
}

func suffixFor(vals map[string]any, keys []string) string {
	out := ""
	for i, k := range keys {
		if i > 0 {
			out += "_"
		}
		out += fmt.Sprintf("%s_%v", k, vals[k])
	}
	return out
}

func equalStrSlices(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
