package app

import (
	"context"
	"math/rand"

	"eamlab/domain/abc"
	"eamlab/ports"
)

// ABCService wires posterior inference through the ABCEngine port, plus
// the report exporter — the seam a caller drives to go from simulated
// summary statistics to a posterior report.
type ABCService struct {
	engine ports.ABCEngine
	report ports.Report // nil-safe: exporting is optional, inference is not
}

// NewABCService wires the inference engine and, optionally, a report
// exporter.
func NewABCService(engine ports.ABCEngine, report ports.Report) *ABCService {
	return &ABCService{engine: engine, report: report}
}

// BuildInput aligns simulated param/sumstat rows against an observed
// target into an ABCInput.
func (s *ABCService) BuildInput(paramNames []string, paramRows []map[string]float64, sumstatNames []string, sumstatRows []map[string]float64, target map[string]float64) (*abc.ABCInput, error) {
	return abc.Build(paramNames, paramRows, sumstatNames, sumstatRows, target)
}

// RunABC runs one posterior-adjustment method.
func (s *ABCService) RunABC(ctx context.Context, method string, tol float64, hidden int, input *abc.ABCInput) (*abc.ABCResult, error) {
	return s.engine.RunABC(ctx, method, tol, hidden, input)
}

// Resample runs resample_abc.
func (s *ABCService) Resample(ctx context.Context, method string, tol float64, hidden int, input *abc.ABCInput, nIterations, nSamples int, replace bool, r *rand.Rand) ([]*abc.ABCResult, string, error) {
	return s.engine.Resample(ctx, method, tol, hidden, input, nIterations, nSamples, replace, r)
}

// Bootstrap runs bootstrap_posterior.
func (s *ABCService) Bootstrap(ctx context.Context, result *abc.ABCResult, nSamples int, replace bool, r *rand.Rand) ([][]float64, error) {
	return s.engine.Bootstrap(ctx, result, nSamples, replace, r)
}

// SummariseAndExport walks a resample run all the way to a durable
// artifact on disk: summarise the per-iteration medians, then
// (when an exporter is wired) write the xlsx report and markdown
// narrative alongside it.
func (s *ABCService) SummariseAndExport(ctx context.Context, results []*abc.ABCResult, ciLevel float64, raw *abc.ABCResult, reportPath, narrativePath string) (*abc.ResampleMedianTable, error) {
	table, err := s.engine.SummariseResampleMedians(ctx, results, ciLevel)
	if err != nil {
		return nil, err
	}
	if s.report == nil {
		return table, nil
	}
	if reportPath != "" {
		if err := s.report.ExportReport(reportPath, table, raw); err != nil {
			return nil, err
		}
	}
	if narrativePath != "" {
		if err := s.report.ExportNarrative(narrativePath, table); err != nil {
			return nil, err
		}
	}
	return table, nil
}
