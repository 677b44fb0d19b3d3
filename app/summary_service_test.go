package app

import (
	"testing"

	"eamlab/domain/summary"
)

func TestSummaryService_Apply_ConvertsMapRowsToTable(t *testing.T) {
	svc := NewSummaryService()
	rows := []map[string]any{
		{"condition_idx": 1, "rt": 1.0},
		{"condition_idx": 1, "rt": 3.0},
		{"condition_idx": 2, "rt": 2.0},
	}
	spec := summary.Spec{{
		By:      []string{"condition_idx"},
		WiderBy: []string{"condition_idx"},
		Aggregations: []summary.Aggregation{
			summary.Named("mean_rt", summary.Mean("rt")),
		},
	}}

	out, err := svc.Apply(spec, rows)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if len(out.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(out.Rows))
	}
}

func TestFlattenRows_MergesIdentifiersAndValues(t *testing.T) {
	table := &summary.AppliedTable{
		WiderBy: []string{"condition_idx"},
		Rows: []*summary.AppliedRow{
			{
				Identifiers: map[string]any{"condition_idx": 1},
				Values:      map[string]float64{"mean_rt": 1.5},
			},
		},
	}
	flat := FlattenRows(table)
	if len(flat) != 1 {
		t.Fatalf("expected 1 flattened row, got %d", len(flat))
	}
	if flat[0]["condition_idx"] != 1 || flat[0]["mean_rt"] != 1.5 {
		t.Fatalf("unexpected flattened row: %v", flat[0])
	}
}
