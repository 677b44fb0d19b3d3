package app

import (
	"fmt"
	"hash/fnv"
	"sort"

	"eamlab/domain/config"
	"eamlab/domain/core"
)

// configHash fingerprints the parts of a SimulationConfig that determine
// its statistical content, for the run catalog's config_hash column. Not
// a cryptographic digest — collision resistance across unrelated runs is
// enough for an operational ledger.
func configHash(cfg *config.SimulationConfig) core.Hash {
	h := fnv.New64a()
	fmt.Fprintf(h, "model=%s backend=%s n_conditions=%d n_trials=%d n_items=%d max_t=%g dt=%g noise=%s seed=%d",
		cfg.Model, cfg.Backend, cfg.NConditions, cfg.NTrialsPerCondition, cfg.NItems, cfg.MaxT, cfg.Dt, cfg.NoiseMechanism, cfg.RandSeed)

	keys := make([]string, 0, len(cfg.PriorParams))
	for k := range cfg.PriorParams {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(h, " %s=%v", k, cfg.PriorParams[k])
	}
	return core.Hash(fmt.Sprintf("%x", h.Sum64()))
}
