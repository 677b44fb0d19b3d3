// Package app wires the domain packages into the driver, dispatcher and
// ABC services the caller actually invokes.
package app

import (
	"context"
	"log"
	"math/rand"
	"time"

	"eamlab/domain/config"
	"eamlab/domain/core"
	"eamlab/domain/formula"
	"eamlab/domain/kernel"
	"eamlab/domain/router"
	"eamlab/domain/simulation"
	"eamlab/ports"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// SimulationService is the chunked simulation driver.
type SimulationService struct {
	rng     ports.RNGPort
	dataset ports.DatasetStore
	catalog ports.RunCatalog // nil-safe: catalog writes are observability, not correctness
}

// NewSimulationService wires the driver's ports.
func NewSimulationService(rng ports.RNGPort, dataset ports.DatasetStore, catalog ports.RunCatalog) *SimulationService {
	return &SimulationService{rng: rng, dataset: dataset, catalog: catalog}
}

// SimulationOutput is a lazy handle onto an on-disk dataset.
type SimulationOutput struct {
	RunID     core.RunID
	OutputDir string
	Config    *config.SimulationConfig
}

func (s *SimulationService) recordCatalog(ctx context.Context, entry ports.RunCatalogEntry) {
	if s.catalog == nil {
		return
	}
	if err := s.catalog.Record(ctx, entry); err != nil {
		log.Printf("[driver] run catalog unavailable: %v", err)
	}
}

func (s *SimulationService) completeCatalog(ctx context.Context, runID core.RunID, status ports.RunStatus, errMsg string) {
	if s.catalog == nil {
		return
	}
	if err := s.catalog.Complete(ctx, runID, status, errMsg); err != nil {
		log.Printf("[driver] run catalog unavailable: %v", err)
	}
}

// Run pre-evaluates priors, partitions conditions into chunks, then drives
// the between-trial/item formulas and kernel for every condition in every
// chunk, bounded by cfg.NCores.
func (s *SimulationService) Run(ctx context.Context, outputDir string, cfg *config.SimulationConfig) (*SimulationOutput, error) {
	runID := core.NewRunID()
	s.recordCatalog(ctx, ports.RunCatalogEntry{
		RunID:      runID,
		ConfigHash: configHash(cfg),
		OutputDir:  outputDir,
		Model:      cfg.Model,
		Backend:    string(cfg.Backend),
		StartedAt:  time.Now().UTC(),
		Status:     ports.RunStatusRunning,
	})

	fail := func(err error) (*SimulationOutput, error) {
		s.completeCatalog(ctx, runID, ports.RunStatusFailed, err.Error())
		return nil, err
	}

	priorRand, err := s.rng.SeededStream(ctx, "prior_formulas", cfg.RandSeed)
	if err != nil {
		return fail(err)
	}
	priorEnv, err := formula.EvaluateBindings(cfg.PriorFormulas, formula.Env(cfg.PriorParams), cfg.NConditions, priorRand)
	if err != nil {
		return fail(err)
	}

	conditions := buildConditions(priorEnv, cfg)
	if err := s.dataset.WriteEvaluatedConditions(ctx, outputDir, conditions); err != nil {
		return fail(err)
	}

	nCores := cfg.NCores
	if nCores < 1 {
		nCores = 1
	}
	g, gctx := errgroup.WithContext(ctx)
	sem := semaphore.NewWeighted(int64(nCores))

	for chunkIdx := 1; chunkIdx <= cfg.NChunks(); chunkIdx++ {
		chunkIdx := chunkIdx
		chunkConditions := conditionsInChunk(conditions, chunkIdx)
		if len(chunkConditions) == 0 {
			continue
		}
		if err := sem.Acquire(gctx, 1); err != nil {
			break
		}
		g.Go(func() error {
			defer sem.Release(1)
			start := time.Now()
			r, err := s.rng.ChunkStream(gctx, runID, chunkIdx, cfg.RandSeed)
			if err != nil {
				return err
			}
			rows, err := simulateChunk(chunkConditions, cfg, r)
			if err != nil {
				return err
			}
			if err := s.dataset.WriteChunk(gctx, outputDir, chunkIdx, rows); err != nil {
				return err
			}
			log.Printf("[driver] chunk=%d conditions=%d rows=%d dur=%s", chunkIdx, len(chunkConditions), len(rows), time.Since(start))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fail(err)
	}

	s.completeCatalog(ctx, runID, ports.RunStatusComplete, "")
	return &SimulationOutput{RunID: runID, OutputDir: outputDir, Config: cfg}, nil
}

func buildConditions(env formula.Env, cfg *config.SimulationConfig) []simulation.EvaluatedCondition {
	out := make([]simulation.EvaluatedCondition, cfg.NConditions)
	for i := 0; i < cfg.NConditions; i++ {
		params := make(map[string]float64, len(env))
		for k, v := range env {
			params[k] = valueAt(v, i)
		}
		conditionIdx := i + 1
		out[i] = simulation.EvaluatedCondition{
			ConditionIdx: conditionIdx,
			ChunkIdx:     simulation.ChunkIdxFor(conditionIdx, cfg.NConditionsPerChunk),
			Params:       params,
		}
	}
	return out
}

func conditionsInChunk(conditions []simulation.EvaluatedCondition, chunkIdx int) []simulation.EvaluatedCondition {
	var out []simulation.EvaluatedCondition
	for _, c := range conditions {
		if c.ChunkIdx == chunkIdx {
			out = append(out, c)
		}
	}
	return out
}

func conditionEnv(params map[string]float64) formula.Env {
	env := make(formula.Env, len(params))
	for k, v := range params {
		env[k] = []float64{v}
	}
	return env
}

// valueAt reads element idx of a resolved vector, broadcasting a length-1
// vector (a seed-env constant such as a prior_params entry) to every index.
func valueAt(v []float64, idx int) float64 {
	if len(v) == 1 {
		return v[0]
	}
	return v[idx]
}

func envAtIndex(env formula.Env, idx int) formula.Env {
	out := make(formula.Env, len(env))
	for k, v := range env {
		out[k] = []float64{valueAt(v, idx)}
	}
	return out
}

func paramsAtIndex(env formula.Env, idx int) map[string]float64 {
	out := make(map[string]float64, len(env))
	for k, v := range env {
		out[k] = valueAt(v, idx)
	}
	return out
}

// simulateChunk runs the between-trial/item formula stages and the
// kernel for every condition assigned to this chunk.
func simulateChunk(conditions []simulation.EvaluatedCondition, cfg *config.SimulationConfig, r *rand.Rand) ([]simulation.Row, error) {
	var rows []simulation.Row
	for _, cond := range conditions {
		trialEnv, err := formula.EvaluateBindings(cfg.BetweenTrialFormulas, conditionEnv(cond.Params), cfg.NTrialsPerCondition, r)
		if err != nil {
			return nil, err
		}
		for t := 0; t < cfg.NTrialsPerCondition; t++ {
			trialIdx := t + 1
			trialSeed := envAtIndex(trialEnv, t)

			itemEnv, err := formula.EvaluateBindings(cfg.ItemFormulas, trialSeed, cfg.NItems, r)
			if err != nil {
				return nil, err
			}
			noiseFn, err := cfg.NoiseFactory(trialSeed, r)
			if err != nil {
				return nil, err
			}

			records, err := runKernel(cfg, itemEnv, noiseFn)
			if err != nil {
				return nil, err
			}
			for _, rec := range records {
				rows = append(rows, simulation.Row{
					ConditionIdx: cond.ConditionIdx,
					TrialIdx:     trialIdx,
					RankIdx:      rec.RankIdx,
					ItemIdx:      rec.ItemIdx,
					RT:           rec.RT,
					Choice:       rec.Choice,
					HasChoice:    rec.HasChoice,
					ChunkIdx:     cond.ChunkIdx,
					Params:       paramsAtIndex(itemEnv, rec.ItemIdx-1),
				})
			}
		}
	}
	return rows, nil
}

func runKernel(cfg *config.SimulationConfig, env formula.Env, noise kernel.NoiseFunc) ([]kernel.Record, error) {
	get := func(name string) []float64 {
		v, _ := env.Get(name)
		return v
	}
	switch cfg.Backend {
	case router.BackendDDM:
		return kernel.SimulateDDM1B(kernel.DDM1BInput{
			V: get("V"), A: get("A"), Z: get("Z"), Ndt: get("ndt"),
			MaxT: cfg.MaxT, Dt: cfg.Dt, MaxReached: cfg.MaxReached,
			Mechanism: cfg.NoiseMechanism, Noise: noise,
		})
	case router.BackendDDM2B:
		return kernel.SimulateDDM2B(kernel.DDM2BInput{
			V: get("V"), AUpper: get("A_upper"), ALower: get("A_lower"), Z: get("Z"), Ndt: get("ndt"),
			MaxT: cfg.MaxT, Dt: cfg.Dt, MaxReached: cfg.MaxReached,
			Mechanism: cfg.NoiseMechanism, Noise: noise,
		})
	case router.BackendLCAGI:
		return kernel.SimulateLCAGI(kernel.LCAGIInput{
			V: get("V"), A: get("A"), Beta: get("beta"), K: get("k"), Z: get("Z"), Ndt: get("ndt"),
			MaxT: cfg.MaxT, Dt: cfg.Dt, MaxReached: cfg.MaxReached,
			Mechanism: cfg.NoiseMechanism, Noise: noise,
		})
	default:
		return nil, core.New(core.KindConfigInvalid, "unrouted backend")
	}
}
