package ports

import (
	"time"

	"eamlab/domain/abc"
	"eamlab/domain/core"
)

// ResampleMedianSummary is one parameter's row of a ResampleReport —
// the durable shape handed to the out-of-scope plotting layer.
type ResampleMedianSummary struct {
	Param  string
	Mean   float64
	Median float64
	CILo   float64
	CIHi   float64
}

// ResampleReport is the durable artifact: a ResampleMedianTable snapshot
// plus provenance, independent of the xlsx/markdown rendering of it.
type ResampleReport struct {
	Iterations        []ResampleMedianSummary
	GeneratedAt       time.Time
	SourceFingerprint core.Hash
}

// Report is the posterior/resample report exporter.
type Report interface {
	ExportReport(path string, table *abc.ResampleMedianTable, raw *abc.ABCResult) error
	ExportNarrative(path string, table *abc.ResampleMedianTable) error
}
