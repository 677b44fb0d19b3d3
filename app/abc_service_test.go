package app

import (
	"context"
	"math/rand"
	"testing"

	"eamlab/domain/abc"
)

type stubEngine struct {
	runResult    *abc.ABCResult
	resampled    []*abc.ABCResult
	summarised   *abc.ResampleMedianTable
	bootstrapOut [][]float64
}

func (s *stubEngine) RunABC(_ context.Context, _ string, _ float64, _ int, _ *abc.ABCInput) (*abc.ABCResult, error) {
	return s.runResult, nil
}

func (s *stubEngine) Resample(_ context.Context, _ string, _ float64, _ int, _ *abc.ABCInput, _, _ int, _ bool, _ *rand.Rand) ([]*abc.ABCResult, string, error) {
	return s.resampled, "", nil
}

func (s *stubEngine) Bootstrap(_ context.Context, _ *abc.ABCResult, _ int, _ bool, _ *rand.Rand) ([][]float64, error) {
	return s.bootstrapOut, nil
}

func (s *stubEngine) SummariseResampleMedians(_ context.Context, _ []*abc.ABCResult, _ float64) (*abc.ResampleMedianTable, error) {
	return s.summarised, nil
}

type stubReport struct {
	reportPath, narrativePath string
}

func (s *stubReport) ExportReport(path string, _ *abc.ResampleMedianTable, _ *abc.ABCResult) error {
	s.reportPath = path
	return nil
}

func (s *stubReport) ExportNarrative(path string, _ *abc.ResampleMedianTable) error {
	s.narrativePath = path
	return nil
}

func TestABCService_BuildInputAndRun(t *testing.T) {
	engine := &stubEngine{runResult: &abc.ABCResult{
		Method: "rejection", ParamNames: []string{"V"},
		Values: [][]float64{{0.3}, {0.4}},
	}}
	svc := NewABCService(engine, nil)

	input, err := svc.BuildInput(
		[]string{"V"}, []map[string]float64{{"V": 0.3}, {"V": 0.4}},
		[]string{"mean_rt"}, []map[string]float64{{"mean_rt": 1.0}, {"mean_rt": 1.1}},
		map[string]float64{"mean_rt": 1.05},
	)
	if err != nil {
		t.Fatalf("BuildInput: %v", err)
	}

	res, err := svc.RunABC(context.Background(), "rejection", 0.1, 0, input)
	if err != nil {
		t.Fatalf("RunABC: %v", err)
	}
	if res.Npost() != 2 {
		t.Fatalf("expected 2 posterior draws, got %d", res.Npost())
	}
}

func TestABCService_SummariseAndExport_SkipsExportWithoutReport(t *testing.T) {
	engine := &stubEngine{summarised: &abc.ResampleMedianTable{CILevel: 0.9}}
	svc := NewABCService(engine, nil)

	table, err := svc.SummariseAndExport(context.Background(), nil, 0.9, nil, "/tmp/report.xlsx", "/tmp/report.md")
	if err != nil {
		t.Fatalf("SummariseAndExport: %v", err)
	}
	if table.CILevel != 0.9 {
		t.Fatalf("unexpected table: %v", table)
	}
}

func TestABCService_SummariseAndExport_WritesBothArtifactsWhenReportWired(t *testing.T) {
	engine := &stubEngine{summarised: &abc.ResampleMedianTable{CILevel: 0.95}}
	report := &stubReport{}
	svc := NewABCService(engine, report)

	if _, err := svc.SummariseAndExport(context.Background(), nil, 0.95, nil, "/tmp/report.xlsx", "/tmp/report.md"); err != nil {
		t.Fatalf("SummariseAndExport: %v", err)
	}
	if report.reportPath != "/tmp/report.xlsx" || report.narrativePath != "/tmp/report.md" {
		t.Fatalf("expected both artifacts written, got %+v", report)
	}
}
