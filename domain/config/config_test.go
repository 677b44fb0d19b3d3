package config

import (
	"testing"

	"eamlab/domain/core"
	"eamlab/domain/formula"
	"eamlab/domain/router"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseConfig() SimulationConfig {
	return SimulationConfig{
		Model:               "ddm",
		PriorParams:         map[string][]float64{"A": {1}},
		ItemFormulas:        []formula.Binding{{Name: "V", Expr: formula.C(1)}},
		NConditions:         4,
		NTrialsPerCondition: 10,
		NItems:              1,
		MaxT:                2,
		Dt:                  1e-3,
	}
}

func TestBuild_ValidConfigResolvesBackend(t *testing.T) {
	c, err := Build(baseConfig())
	require.NoError(t, err)
	assert.Equal(t, router.BackendDDM, c.Backend)
	assert.Equal(t, c.NItems, c.MaxReached)
	assert.NotNil(t, c.NoiseFactory)
}

func TestBuild_MaxReachedExceedsNItems(t *testing.T) {
	c := baseConfig()
	c.MaxReached = 5
	c.NItems = 1
	_, err := Build(c)
	require.Error(t, err)
	assert.Equal(t, core.KindConfigInvalid, core.KindOf(err))
}

func TestBuild_MissingRequiredParam(t *testing.T) {
	c := baseConfig()
	c.PriorParams = nil // drops A
	_, err := Build(c)
	require.Error(t, err)
	assert.Equal(t, core.KindConfigInvalid, core.KindOf(err))
}

func TestBuild_UnknownModel(t *testing.T) {
	c := baseConfig()
	c.Model = "bogus"
	_, err := Build(c)
	require.Error(t, err)
	assert.Equal(t, core.KindUnknownModel, core.KindOf(err))
}

func TestBuild_MultAliasNormalizesToMultEvidence(t *testing.T) {
	c := baseConfig()
	c.NoiseMechanism = "mult"
	built, err := Build(c)
	require.NoError(t, err)
	assert.Equal(t, "mult_evidence", string(built.NoiseMechanism))
}

func TestChunkSize_FloorAndCap(t *testing.T) {
	assert.Equal(t, 1, ChunkSize(0, 10, 1, 1, false))
	assert.GreaterOrEqual(t, ChunkSize(100, 10, 1, 4, true), 1)

	// n_items*n_trials_per_condition*chunk_size must stay <= 200_000
	size := ChunkSize(1_000_000, 1000, 100, 8, true)
	assert.LessOrEqual(t, size*1000*100, 200_000)
}
