package app

import (
	"eamlab/domain/summary"
)

// SummaryService wraps the summary-stat apply/compose operations in the
// app layer's own vocabulary, converting map_by_condition's generic
// []map[string]any results into the column-typed shapes the ABC layer
// needs.
type SummaryService struct{}

// NewSummaryService returns a SummaryService.
func NewSummaryService() *SummaryService { return &SummaryService{} }

// Apply runs spec against rows — a thin pass-through to domain/summary's
// pure function, kept here so callers depend on the app layer, not on
// domain/summary directly.
func (s *SummaryService) Apply(spec summary.Spec, rows []map[string]any) (*summary.AppliedTable, error) {
	data := make(summary.Table, len(rows))
	for i, r := range rows {
		data[i] = summary.Row(r)
	}
	return summary.Apply(spec, data)
}

// FlattenRows merges each AppliedRow's wider_by identifiers and value
// columns into one flat map, the shape abc.Build expects per row.
func FlattenRows(table *summary.AppliedTable) []map[string]float64 {
	out := make([]map[string]float64, len(table.Rows))
	for i, row := range table.Rows {
		flat := make(map[string]float64, len(row.Identifiers)+len(row.Values))
		for k, v := range row.Identifiers {
			if f, ok := toFloat(v); ok {
				flat[k] = f
			}
		}
		for k, v := range row.Values {
			flat[k] = v
		}
		out[i] = flat
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
