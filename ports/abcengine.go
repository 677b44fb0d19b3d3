package ports

import (
	"context"
	"math/rand"

	"eamlab/domain/abc"
)

// ABCEngine is the hexagonal seam between the app layer and the local
// ABC implementation in domain/abc: the app layer depends only on this
// interface and method names, not on the concrete PosteriorMethod
// types.
type ABCEngine interface {
	RunABC(ctx context.Context, method string, tol float64, hidden int, input *abc.ABCInput) (*abc.ABCResult, error)

	Resample(ctx context.Context, method string, tol float64, hidden int, input *abc.ABCInput, nIterations, nSamples int, replace bool, r *rand.Rand) ([]*abc.ABCResult, string, error)

	Bootstrap(ctx context.Context, result *abc.ABCResult, nSamples int, replace bool, r *rand.Rand) ([][]float64, error)

	SummariseResampleMedians(ctx context.Context, results []*abc.ABCResult, ciLevel float64) (*abc.ResampleMedianTable, error)
}
