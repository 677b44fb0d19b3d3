package app

import (
	"context"
	"sort"

	"eamlab/domain/simulation"
	"eamlab/ports"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// MapFunc is the caller's per-condition reducer: it is guaranteed to see
// every row of exactly one condition, and no condition's rows are ever
// split across two calls.
type MapFunc func(conditionIdx int, rows []simulation.Row) (map[string]any, error)

// MapByConditionService is the out-of-core map-by-condition dispatcher.
type MapByConditionService struct {
	dataset ports.DatasetStore
}

// NewMapByConditionService wires the dispatcher's DatasetStore port.
func NewMapByConditionService(dataset ports.DatasetStore) *MapByConditionService {
	return &MapByConditionService{dataset: dataset}
}

func groupByCondition(rows []simulation.Row) (order []int, byCondition map[int][]simulation.Row) {
	byCondition = map[int][]simulation.Row{}
	for _, r := range rows {
		if _, ok := byCondition[r.ConditionIdx]; !ok {
			order = append(order, r.ConditionIdx)
		}
		byCondition[r.ConditionIdx] = append(byCondition[r.ConditionIdx], r)
	}
	sort.Ints(order)
	return order, byCondition
}

// Map enumerates chunk partitions via the dataset store, splits each
// chunk by condition_idx, and applies f to every condition's full row
// set — never straddling a chunk boundary, since conditions are assigned
// to chunks up-front by the driver. Output rows are ordered by chunk
// then by condition_idx within chunk. When parallel is true, conditions within one chunk are mapped concurrently
// (bounded by nCores) while chunks themselves stay sequential, to keep
// the output ordering guarantee intact.
func (m *MapByConditionService) Map(ctx context.Context, outputDir string, parallel bool, nCores int, f MapFunc) ([]map[string]any, error) {
	chunks, err := m.dataset.ListChunks(ctx, outputDir)
	if err != nil {
		return nil, err
	}

	var out []map[string]any
	for _, chunkIdx := range chunks {
		rows, err := m.dataset.ReadChunk(ctx, outputDir, chunkIdx)
		if err != nil {
			return nil, err
		}
		order, byCondition := groupByCondition(rows)

		if !parallel {
			for _, condIdx := range order {
				res, err := f(condIdx, byCondition[condIdx])
				if err != nil {
					return nil, err
				}
				out = append(out, res)
			}
			continue
		}

		results := make([]map[string]any, len(order))
		if nCores < 1 {
			nCores = 1
		}
		g, gctx := errgroup.WithContext(ctx)
		sem := semaphore.NewWeighted(int64(nCores))
		for i, condIdx := range order {
			i, condIdx := i, condIdx
			if err := sem.Acquire(gctx, 1); err != nil {
				break
			}
			g.Go(func() error {
				defer sem.Release(1)
				res, err := f(condIdx, byCondition[condIdx])
				if err != nil {
					return err
				}
				results[i] = res
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
		out = append(out, results...)
	}
	return out, nil
}
