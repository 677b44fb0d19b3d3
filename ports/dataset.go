package ports

import (
	"context"

	"eamlab/domain/simulation"
)

// DatasetStore persists and reads back the partitioned on-disk dataset
// the chunked driver produces: the pre-evaluated conditions table and
// one SimulationRow file per chunk.
type DatasetStore interface {
	WriteEvaluatedConditions(ctx context.Context, outputDir string, rows []simulation.EvaluatedCondition) error
	ReadEvaluatedConditions(ctx context.Context, outputDir string) ([]simulation.EvaluatedCondition, error)

	WriteChunk(ctx context.Context, outputDir string, chunkIdx int, rows []simulation.Row) error
	ReadChunk(ctx context.Context, outputDir string, chunkIdx int) ([]simulation.Row, error)

	// ListChunks returns the chunk indices actually present on disk, in
	// ascending order — used by the map-by-condition dispatcher to
	// iterate chunks without a separate manifest.
	ListChunks(ctx context.Context, outputDir string) ([]int, error)
}
