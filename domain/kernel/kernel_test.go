package kernel

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func zeroNoise(count int, dt float64) []float64 { return make([]float64, count) }

// S3: single item, V huge, A=1, ndt=0, zero noise — crosses on the very
// first step.
func TestSimulateDDM1B_TrivialCrossing(t *testing.T) {
	records, err := SimulateDDM1B(DDM1BInput{
		V:          []float64{1e9},
		A:          []float64{1},
		MaxT:       1,
		Dt:         1e-3,
		MaxReached: 1,
		Mechanism:  Add,
		Noise:      zeroNoise,
	})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 1, records[0].ItemIdx)
	assert.Equal(t, 1, records[0].RankIdx)
	assert.InDelta(t, 1e-3, records[0].RT, 1e-9)
}

func TestSimulateDDM1B_UnfinishedItemsProduceNoRow(t *testing.T) {
	records, err := SimulateDDM1B(DDM1BInput{
		V:          []float64{0},
		A:          []float64{1},
		MaxT:       0.01,
		Dt:         1e-3,
		MaxReached: 1,
		Mechanism:  Add,
		Noise:      zeroNoise,
	})
	require.NoError(t, err)
	assert.Empty(t, records)
}

// S4: symmetric two-boundary DDM with V=0 should produce roughly equal
// numbers of +1/-1 choices over many trials.
func TestSimulateDDM2B_SymmetricChoiceDistribution(t *testing.T) {
	const trials = 2000
	plus := 0
	for trial := 0; trial < trials; trial++ {
		seed := int64(trial + 1)
		rng := newTestRand(seed)
		records, err := SimulateDDM2B(DDM2BInput{
			V:          []float64{0},
			AUpper:     []float64{1},
			ALower:     []float64{-1},
			MaxT:       5,
			Dt:         1e-2,
			MaxReached: 1,
			Mechanism:  Add,
			Noise: func(count int, dt float64) []float64 {
				out := make([]float64, count)
				for i := range out {
					out[i] = rng.NormFloat64() * 0.3 * math.Sqrt(dt)
				}
				return out
			},
		})
		require.NoError(t, err)
		if len(records) == 1 && records[0].Choice == 1 {
			plus++
		}
	}
	frac := float64(plus) / float64(trials)
	assert.InDelta(t, 0.5, frac, 0.07)
}

// A fast item crossing early must not cost a slower, still-active item
// its diffusion step for that same tick: both items are stepped every
// tick regardless of which one (if any) crosses. Item 2's boundary sits
// between its step-1999 value (1.999) and its step-2000 value (2.0), so a
// skipped first tick would push its crossing to 2.001.
func TestSimulateDDM1B_EarlyCrossingDoesNotStarveOtherItems(t *testing.T) {
	records, err := SimulateDDM1B(DDM1BInput{
		V:          []float64{1e9, 1},
		A:          []float64{1, 1.9995},
		MaxT:       3,
		Dt:         1e-3,
		MaxReached: 2,
		Mechanism:  Add,
		Noise:      zeroNoise,
	})
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, 1, records[0].ItemIdx)
	assert.InDelta(t, 1e-3, records[0].RT, 1e-9)
	assert.Equal(t, 2, records[1].ItemIdx)
	assert.InDelta(t, 2.0, records[1].RT, 1e-9)
}

func TestSimulateDDM2B_EarlyCrossingDoesNotStarveOtherItems(t *testing.T) {
	records, err := SimulateDDM2B(DDM2BInput{
		V:          []float64{1e9, 1},
		AUpper:     []float64{1, 1.9995},
		ALower:     []float64{-1, -2},
		MaxT:       3,
		Dt:         1e-3,
		MaxReached: 2,
		Mechanism:  Add,
		Noise:      zeroNoise,
	})
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, 1, records[0].ItemIdx)
	assert.InDelta(t, 1e-3, records[0].RT, 1e-9)
	assert.Equal(t, 2, records[1].ItemIdx)
	assert.InDelta(t, 2.0, records[1].RT, 1e-9)
	assert.Equal(t, int8(1), records[1].Choice)
}

func TestSimulateLCAGI_FirstToReachWins(t *testing.T) {
	records, err := SimulateLCAGI(LCAGIInput{
		V:          []float64{1e9, 1},
		A:          []float64{1, 1},
		Beta:       []float64{0, 0},
		K:          []float64{0, 0},
		MaxT:       1,
		Dt:         1e-3,
		MaxReached: 2,
		Mechanism:  Add,
		Noise:      zeroNoise,
	})
	require.NoError(t, err)
	require.NotEmpty(t, records)
	assert.Equal(t, 1, records[0].ItemIdx)
	assert.Equal(t, 1, records[0].RankIdx)
}

func TestSimulateDDM1B_InvalidInput(t *testing.T) {
	_, err := SimulateDDM1B(DDM1BInput{V: []float64{1}, A: []float64{1}, MaxT: -1, Dt: 1e-3, MaxReached: 1, Noise: zeroNoise})
	require.Error(t, err)
}
