package parquet

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"eamlab/domain/core"
	"eamlab/domain/simulation"
	"eamlab/ports"
)

// Store is the production ports.DatasetStore implementation: one Arrow/
// Parquet file per chunk_idx=<k> partition directory.
type Store struct{}

// New returns a Store.
func New() *Store { return &Store{} }

func conditionsDir(outputDir string) string { return filepath.Join(outputDir, "evaluated_conditions") }
func datasetDir(outputDir string) string    { return filepath.Join(outputDir, "dataset") }

func partitionDir(base string, chunkIdx int) string {
	return filepath.Join(base, fmt.Sprintf("chunk_idx=%d", chunkIdx))
}

func ensureDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return core.Wrap(core.KindIOError, "creating partition directory", err)
	}
	return nil
}

func (s *Store) WriteEvaluatedConditions(ctx context.Context, outputDir string, rows []simulation.EvaluatedCondition) error {
	byChunk := map[int][]simulation.EvaluatedCondition{}
	for _, r := range rows {
		byChunk[r.ChunkIdx] = append(byChunk[r.ChunkIdx], r)
	}
	for chunkIdx, chunkRows := range byChunk {
		dir := partitionDir(conditionsDir(outputDir), chunkIdx)
		if err := ensureDir(dir); err != nil {
			return err
		}
		if err := writeConditions(filepath.Join(dir, "part-0.parquet"), chunkRows); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) ReadEvaluatedConditions(ctx context.Context, outputDir string) ([]simulation.EvaluatedCondition, error) {
	chunks, err := listPartitions(conditionsDir(outputDir))
	if err != nil {
		return nil, err
	}
	var out []simulation.EvaluatedCondition
	for _, chunkIdx := range chunks {
		path := filepath.Join(partitionDir(conditionsDir(outputDir), chunkIdx), "part-0.parquet")
		rows, err := readConditions(path)
		if err != nil {
			return nil, err
		}
		out = append(out, rows...)
	}
	return out, nil
}

func (s *Store) WriteChunk(ctx context.Context, outputDir string, chunkIdx int, rows []simulation.Row) error {
	dir := partitionDir(datasetDir(outputDir), chunkIdx)
	if err := ensureDir(dir); err != nil {
		return err
	}
	return writeRows(filepath.Join(dir, "part-0.parquet"), rows)
}

func (s *Store) ReadChunk(ctx context.Context, outputDir string, chunkIdx int) ([]simulation.Row, error) {
	path := filepath.Join(partitionDir(datasetDir(outputDir), chunkIdx), "part-0.parquet")
	return readRows(path)
}

func (s *Store) ListChunks(ctx context.Context, outputDir string) ([]int, error) {
	return listPartitions(datasetDir(outputDir))
}

func listPartitions(base string) ([]int, error) {
	entries, err := os.ReadDir(base)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, core.Wrap(core.KindIOError, "listing partitions", err)
	}
	var out []int
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		name := e.Name()
		if !strings.HasPrefix(name, "chunk_idx=") {
			continue
		}
		k, err := strconv.Atoi(strings.TrimPrefix(name, "chunk_idx="))
		if err != nil {
			continue
		}
		out = append(out, k)
	}
	sort.Ints(out)
	return out, nil
}

var _ ports.DatasetStore = (*Store)(nil)
