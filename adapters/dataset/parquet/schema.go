// Package parquet implements ports.DatasetStore over Arrow/Parquet
// files, one file per chunk_idx=<k> partition.
package parquet

import (
	"sort"

	"eamlab/domain/simulation"

	"github.com/apache/arrow/go/v17/arrow"
)

func paramColumns(rowsParams []map[string]float64) []string {
	seen := map[string]bool{}
	for _, p := range rowsParams {
		for k := range p {
			seen[k] = true
		}
	}
	out := make([]string, 0, len(seen))
	for k := range seen {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func conditionSchema(params []string) *arrow.Schema {
	fields := []arrow.Field{
		{Name: "condition_idx", Type: arrow.PrimitiveTypes.Int64},
		{Name: "chunk_idx", Type: arrow.PrimitiveTypes.Int64},
	}
	for _, p := range params {
		fields = append(fields, arrow.Field{Name: p, Type: arrow.PrimitiveTypes.Float64})
	}
	return arrow.NewSchema(fields, nil)
}

func rowSchema(params []string, hasChoice bool) *arrow.Schema {
	fields := []arrow.Field{
		{Name: "condition_idx", Type: arrow.PrimitiveTypes.Int64},
		{Name: "trial_idx", Type: arrow.PrimitiveTypes.Int64},
		{Name: "rank_idx", Type: arrow.PrimitiveTypes.Int64},
		{Name: "item_idx", Type: arrow.PrimitiveTypes.Int64},
		{Name: "rt", Type: arrow.PrimitiveTypes.Float64},
	}
	if hasChoice {
		fields = append(fields, arrow.Field{Name: "choice", Type: arrow.PrimitiveTypes.Int8})
	}
	fields = append(fields, arrow.Field{Name: "chunk_idx", Type: arrow.PrimitiveTypes.Int64})
	for _, p := range params {
		fields = append(fields, arrow.Field{Name: p, Type: arrow.PrimitiveTypes.Float64})
	}
	return arrow.NewSchema(fields, nil)
}

func anyHasChoice(rows []simulation.Row) bool {
	for _, r := range rows {
		if r.HasChoice {
			return true
		}
	}
	return false
}
