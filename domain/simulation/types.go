// Package simulation holds the on-disk row schemas: EvaluatedConditions
// table rows and SimulationRow rows.
package simulation

import (
	"math"
	"sort"
)

// EvaluatedCondition is one row of the pre-evaluated conditions table:
// every prior_formulas LHS plus the original prior_params keys, plus the
// condition/chunk indices.
type EvaluatedCondition struct {
	ConditionIdx int
	ChunkIdx     int
	Params       map[string]float64
}

// ChunkIdxFor computes ceil(conditionIdx / nConditionsPerChunk), 1-based.
func ChunkIdxFor(conditionIdx, nConditionsPerChunk int) int {
	return int(math.Ceil(float64(conditionIdx) / float64(nConditionsPerChunk)))
}

// Row is one simulation row: a boundary-crossing event broadcast with its
// condition-level parameters.
type Row struct {
	ConditionIdx int
	TrialIdx     int
	RankIdx      int
	ItemIdx      int
	RT           float64
	Choice       int8
	HasChoice    bool
	ChunkIdx     int
	// Params carries every resolved condition/trial/item-level column
	// broadcast onto this row (e.g. "V", "A", "ndt", "sigma", ...).
	Params map[string]float64
}

// ColumnNames returns a stable, sorted list of the Params keys across
// rows, i.e. the set of parameter columns a consistent schema needs.
func ColumnNames(rows []Row) []string {
	seen := make(map[string]bool)
	for _, r := range rows {
		for k := range r.Params {
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
