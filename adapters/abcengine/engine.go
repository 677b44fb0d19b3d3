// Package abcengine adapts the local posterior methods in domain/abc to
// ports.ABCEngine, dispatching on a method name so the app layer never
// imports the concrete PosteriorMethod types directly.
package abcengine

import (
	"context"
	"math/rand"

	"eamlab/domain/abc"
	"eamlab/domain/core"
	"eamlab/ports"
)

// Adapter is the production ports.ABCEngine implementation.
type Adapter struct{}

// New returns an Adapter.
func New() *Adapter { return &Adapter{} }

func resolveMethod(name string, tol float64, hidden int) (abc.PosteriorMethod, error) {
	switch name {
	case "rejection":
		return abc.Rejection{Tol: tol}, nil
	case "local_linear":
		return abc.LocalLinear{Tol: tol}, nil
	case "neural_net":
		return abc.NeuralNet{Tol: tol, Hidden: hidden}, nil
	default:
		return nil, core.New(core.KindConfigInvalid, "unknown ABC method "+name)
	}
}

func (a *Adapter) RunABC(ctx context.Context, method string, tol float64, hidden int, input *abc.ABCInput) (*abc.ABCResult, error) {
	m, err := resolveMethod(method, tol, hidden)
	if err != nil {
		return nil, err
	}
	return m.Run(input)
}

func (a *Adapter) Resample(ctx context.Context, method string, tol float64, hidden int, input *abc.ABCInput, nIterations, nSamples int, replace bool, r *rand.Rand) ([]*abc.ABCResult, string, error) {
	m, err := resolveMethod(method, tol, hidden)
	if err != nil {
		return nil, "", err
	}
	return abc.Resample(m, input, nIterations, nSamples, replace, r)
}

func (a *Adapter) Bootstrap(ctx context.Context, result *abc.ABCResult, nSamples int, replace bool, r *rand.Rand) ([][]float64, error) {
	return abc.Bootstrap(result, nSamples, replace, r)
}

func (a *Adapter) SummariseResampleMedians(ctx context.Context, results []*abc.ABCResult, ciLevel float64) (*abc.ResampleMedianTable, error) {
	return abc.SummariseResampleMedians(results, ciLevel)
}

var _ ports.ABCEngine = (*Adapter)(nil)
