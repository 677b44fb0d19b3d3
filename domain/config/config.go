// Package config implements validating and defaulting a SimulationConfig,
// and the chunk-size heuristic the driver uses to partition conditions.
package config

import (
	"fmt"
	"math"

	"eamlab/domain/formula"
	"eamlab/domain/kernel"
	"eamlab/domain/router"

	"eamlab/domain/core"
)

// SimulationConfig is the complete, validated recipe for one simulation
// run.
type SimulationConfig struct {
	PriorFormulas        []formula.Binding
	BetweenTrialFormulas []formula.Binding
	ItemFormulas         []formula.Binding
	PriorParams          map[string][]float64

	Model   string
	Backend router.Backend

	NConditions         int
	NTrialsPerCondition int
	NItems              int
	MaxReached          int

	MaxT float64
	Dt   float64

	NoiseMechanism kernel.NoiseMechanism
	NoiseFactory   kernel.NoiseFactory

	NConditionsPerChunk int

	Parallel bool
	NCores   int
	RandSeed int64
}

// requiredPhysicalParams names the LHS(s) each backend must be able to
// resolve from some formula tier or prior_params key.
var requiredPhysicalParams = map[router.Backend][]string{
	router.BackendDDM:   {"V", "A"},
	router.BackendDDM2B: {"V", "A_upper", "A_lower"},
	router.BackendLCAGI: {"V", "A"},
}

// Build validates the supplied fields, resolves the backend via the
// router, normalizes the noise mechanism, and returns an immutable
// SimulationConfig or a ConfigInvalid/UnknownModel/AmbiguousModel error.
func Build(c SimulationConfig) (*SimulationConfig, error) {
	if c.NConditions <= 0 {
		return nil, core.New(core.KindConfigInvalid, "n_conditions must be > 0")
	}
	if c.NTrialsPerCondition <= 0 {
		return nil, core.New(core.KindConfigInvalid, "n_trials_per_condition must be > 0")
	}
	if c.NItems <= 0 {
		return nil, core.New(core.KindConfigInvalid, "n_items must be > 0")
	}
	if c.MaxReached <= 0 {
		c.MaxReached = c.NItems
	}
	if c.MaxReached > c.NItems {
		return nil, core.New(core.KindConfigInvalid, fmt.Sprintf("max_reached=%d exceeds n_items=%d", c.MaxReached, c.NItems))
	}
	if c.MaxT <= 0 {
		return nil, core.New(core.KindConfigInvalid, "max_t must be > 0")
	}
	if c.Dt <= 0 {
		return nil, core.New(core.KindConfigInvalid, "dt must be > 0")
	}

	mech, err := kernel.NormalizeMechanism(string(nonEmpty(string(c.NoiseMechanism), "add")))
	if err != nil {
		return nil, err
	}
	c.NoiseMechanism = mech

	lhs := lhsNameSet(c)
	backend, err := router.Route(c.Model, lhs)
	if err != nil {
		return nil, err
	}
	c.Backend = backend

	for _, name := range requiredPhysicalParams[backend] {
		if !lhs[name] {
			return nil, core.New(core.KindConfigInvalid, fmt.Sprintf("backend %s requires a formula or prior_params entry named %q", backend, name))
		}
	}

	if c.NoiseFactory == nil {
		c.NoiseFactory = kernel.GaussianNoiseFactory("sigma")
	}

	if c.NConditionsPerChunk <= 0 {
		cores := c.NCores
		if cores <= 0 {
			cores = 1
		}
		c.NConditionsPerChunk = ChunkSize(c.NConditions, c.NTrialsPerCondition, c.NItems, cores, c.Parallel)
	}

	if c.Parallel {
		if c.NCores <= 0 {
			c.NCores = defaultCores()
		}
		if c.RandSeed == 0 {
			c.RandSeed = defaultSeed()
		}
	} else if c.NCores <= 0 {
		c.NCores = 1
	}

	out := c
	return &out, nil
}

// ChunkSize targets n_partitions in [n_cores, 10*n_cores], approximately
// sqrt(n_conditions) partitions, then caps so that
// n_items*n_trials_per_condition*chunk_size <= 200_000 rows per chunk.
// Floor of 1.
func ChunkSize(nConditions, nTrialsPerCondition, nItems, nCores int, parallel bool) int {
	if nConditions <= 0 {
		return 1
	}
	target := int(math.Sqrt(float64(nConditions)))
	if target < 1 {
		target = 1
	}
	if parallel && nCores > 0 {
		minPartitions := nCores
		maxPartitions := 10 * nCores
		if target < minPartitions {
			target = minPartitions
		}
		if target > maxPartitions {
			target = maxPartitions
		}
	}
	chunkSize := nConditions / target
	if chunkSize < 1 {
		chunkSize = 1
	}

	rowsPerRowUnit := nItems * nTrialsPerCondition
	if rowsPerRowUnit > 0 {
		maxChunk := 200_000 / rowsPerRowUnit
		if maxChunk < 1 {
			maxChunk = 1
		}
		if chunkSize > maxChunk {
			chunkSize = maxChunk
		}
	}
	if chunkSize < 1 {
		chunkSize = 1
	}
	return chunkSize
}

// NChunks is ceil(n_conditions / n_conditions_per_chunk).
func (c *SimulationConfig) NChunks() int {
	return int(math.Ceil(float64(c.NConditions) / float64(c.NConditionsPerChunk)))
}

func lhsNameSet(c SimulationConfig) map[string]bool {
	out := make(map[string]bool)
	for k := range c.PriorParams {
		out[k] = true
	}
	for _, b := range c.PriorFormulas {
		out[b.Name] = true
	}
	for _, b := range c.BetweenTrialFormulas {
		out[b.Name] = true
	}
	for _, b := range c.ItemFormulas {
		out[b.Name] = true
	}
	return out
}

func nonEmpty(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
