package app

import (
	"context"
	"math/rand"
	"sort"
	"testing"

	"eamlab/domain/config"
	"eamlab/domain/core"
	"eamlab/domain/formula"
	"eamlab/domain/kernel"
	"eamlab/domain/simulation"
	"eamlab/ports"
)

// fakeRNG is a deterministic, allocation-free ports.RNGPort for tests —
// every stream is seeded from the supplied seed alone, so test
// assertions don't depend on hashing internals.
type fakeRNG struct{}

func (fakeRNG) SeededStream(_ context.Context, _ string, seed int64) (*rand.Rand, error) {
	return rand.New(rand.NewSource(seed + 1)), nil
}

func (fakeRNG) ChunkStream(_ context.Context, _ core.RunID, chunkIdx int, baseSeed int64) (*rand.Rand, error) {
	return rand.New(rand.NewSource(baseSeed + int64(chunkIdx))), nil
}

// fakeDataset is an in-memory ports.DatasetStore for tests.
type fakeDataset struct {
	conditions []simulation.EvaluatedCondition
	chunks     map[int][]simulation.Row
}

func newFakeDataset() *fakeDataset {
	return &fakeDataset{chunks: map[int][]simulation.Row{}}
}

func (f *fakeDataset) WriteEvaluatedConditions(_ context.Context, _ string, rows []simulation.EvaluatedCondition) error {
	f.conditions = rows
	return nil
}

func (f *fakeDataset) ReadEvaluatedConditions(_ context.Context, _ string) ([]simulation.EvaluatedCondition, error) {
	return f.conditions, nil
}

func (f *fakeDataset) WriteChunk(_ context.Context, _ string, chunkIdx int, rows []simulation.Row) error {
	f.chunks[chunkIdx] = rows
	return nil
}

func (f *fakeDataset) ReadChunk(_ context.Context, _ string, chunkIdx int) ([]simulation.Row, error) {
	return f.chunks[chunkIdx], nil
}

func (f *fakeDataset) ListChunks(_ context.Context, _ string) ([]int, error) {
	var out []int
	for k := range f.chunks {
		out = append(out, k)
	}
	sort.Ints(out)
	return out, nil
}

var _ ports.DatasetStore = (*fakeDataset)(nil)
var _ ports.RNGPort = fakeRNG{}

func ddmConfig(t *testing.T) *config.SimulationConfig {
	t.Helper()
	cfg, err := config.Build(config.SimulationConfig{
		Model:                "ddm",
		NConditions:          4,
		NTrialsPerCondition:  2,
		NItems:               1,
		MaxT:                 5,
		Dt:                   0.01,
		NConditionsPerChunk:  2,
		PriorFormulas:        []formula.Binding{{Name: "A", Expr: formula.C(1.0)}},
		BetweenTrialFormulas: []formula.Binding{{Name: "V", Expr: formula.C(0.3)}},
		ItemFormulas:         []formula.Binding{{Name: "ndt", Expr: formula.C(0.1)}},
		NoiseFactory:         kernel.GaussianNoiseFactory("sigma"),
		PriorParams:          map[string][]float64{"sigma": {1.0}},
	})
	if err != nil {
		t.Fatalf("building config: %v", err)
	}
	return cfg
}

func TestSimulationService_Run_WritesConditionsAndAllChunks(t *testing.T) {
	dataset := newFakeDataset()
	svc := NewSimulationService(fakeRNG{}, dataset, nil)
	cfg := ddmConfig(t)

	out, err := svc.Run(context.Background(), "/tmp/run", cfg)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if out.RunID == "" {
		t.Fatal("expected a non-empty run id")
	}
	if len(dataset.conditions) != cfg.NConditions {
		t.Fatalf("expected %d evaluated conditions, got %d", cfg.NConditions, len(dataset.conditions))
	}
	if len(dataset.chunks) != cfg.NChunks() {
		t.Fatalf("expected %d chunks written, got %d", cfg.NChunks(), len(dataset.chunks))
	}
	total := 0
	for _, rows := range dataset.chunks {
		total += len(rows)
	}
	if total == 0 {
		t.Fatal("expected at least one simulated row across all chunks")
	}
}

func TestSimulationService_Run_RecordsCatalogLifecycle(t *testing.T) {
	dataset := newFakeDataset()
	cat := &fakeCatalog{}
	svc := NewSimulationService(fakeRNG{}, dataset, cat)
	cfg := ddmConfig(t)

	if _, err := svc.Run(context.Background(), "/tmp/run", cfg); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !cat.recorded {
		t.Fatal("expected Record to be called")
	}
	if cat.completedStatus != ports.RunStatusComplete {
		t.Fatalf("expected complete status, got %v", cat.completedStatus)
	}
}

type fakeCatalog struct {
	recorded        bool
	completedStatus ports.RunStatus
}

func (f *fakeCatalog) Record(_ context.Context, _ ports.RunCatalogEntry) error {
	f.recorded = true
	return nil
}

func (f *fakeCatalog) Complete(_ context.Context, _ core.RunID, status ports.RunStatus, _ string) error {
	f.completedStatus = status
	return nil
}

func (f *fakeCatalog) List(_ context.Context, _, _ int) ([]ports.RunCatalogEntry, error) {
	return nil, nil
}

var _ ports.RunCatalog = (*fakeCatalog)(nil)
