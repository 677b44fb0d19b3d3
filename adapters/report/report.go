// Package report implements ports.Report: an xlsx workbook and a markdown
// narrative rendered from a posterior resample summary.
package report

import (
	"fmt"
	"os"
	"strings"

	"eamlab/domain/abc"
	"eamlab/domain/core"
	"eamlab/ports"

	"github.com/gomarkdown/markdown"
	"github.com/xuri/excelize/v2"
)

// Exporter is the production ports.Report implementation.
type Exporter struct{}

// New returns an Exporter.
func New() *Exporter { return &Exporter{} }

func sheetName(param string) string {
	name := strings.Map(func(r rune) rune {
		switch r {
		case '[', ']', ':', '*', '?', '/', '\\':
			return '_'
		default:
			return r
		}
	}, param)
	if len(name) > 31 {
		name = name[:31]
	}
	return name
}

// ExportReport writes an xlsx workbook with one sheet per parameter
// (mean/median plus the two quantile bounds, labeled with the literal
// quantile they sit at, e.g. q_0.025/q_0.975) plus a raw_posterior sheet
// holding raw's accepted draws verbatim.
func (e *Exporter) ExportReport(path string, table *abc.ResampleMedianTable, raw *abc.ABCResult) error {
	f := excelize.NewFile()
	defer f.Close()

	qLoCol, qHiCol := table.QuantileColumnNames()
	firstSheet := "Sheet1"
	for i, row := range table.Rows {
		sheet := sheetName(row.Param)
		if i == 0 {
			f.SetSheetName(firstSheet, sheet)
		} else {
			if _, err := f.NewSheet(sheet); err != nil {
				return core.Wrap(core.KindReportExportFailed, "creating parameter sheet", err)
			}
		}
		headers := []string{"mean", "median", qLoCol, qHiCol}
		for c, h := range headers {
			cell, _ := excelize.CoordinatesToCellName(c+1, 1)
			f.SetCellValue(sheet, cell, h)
		}
		values := []float64{row.Mean, row.Median, row.CILo, row.CIHi}
		for c, v := range values {
			cell, _ := excelize.CoordinatesToCellName(c+1, 2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	if raw != nil {
		if _, err := f.NewSheet("raw_posterior"); err != nil {
			return core.Wrap(core.KindReportExportFailed, "creating raw_posterior sheet", err)
		}
		for c, name := range raw.ParamNames {
			cell, _ := excelize.CoordinatesToCellName(c+1, 1)
			f.SetCellValue("raw_posterior", cell, name)
		}
		for r, row := range raw.Values {
			for c, v := range row {
				cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
				f.SetCellValue("raw_posterior", cell, v)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return core.Wrap(core.KindReportExportFailed, "saving xlsx report", err)
	}
	return nil
}

// ExportNarrative writes a short markdown summary of table. gomarkdown
// parses the generated text purely to validate it renders cleanly — the
// template above is the producer of record, not an input being parsed.
func (e *Exporter) ExportNarrative(path string, table *abc.ResampleMedianTable) error {
	qLoCol, qHiCol := table.QuantileColumnNames()
	var b strings.Builder
	fmt.Fprintf(&b, "# Posterior resample summary\n\n")
	fmt.Fprintf(&b, "Confidence level: %.2f\n\n", table.CILevel)
	fmt.Fprintf(&b, "| parameter | mean | median | %s | %s |\n", qLoCol, qHiCol)
	fmt.Fprintf(&b, "|---|---|---|---|---|\n")
	for _, row := range table.Rows {
		fmt.Fprintf(&b, "| %s | %.4g | %.4g | %.4g | %.4g |\n", row.Param, row.Mean, row.Median, row.CILo, row.CIHi)
	}
	text := b.String()

	if markdown.ToHTML([]byte(text), nil, nil) == nil {
		return core.New(core.KindReportExportFailed, "narrative failed markdown validation")
	}

	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return core.Wrap(core.KindReportExportFailed, "writing narrative markdown", err)
	}
	return nil
}

var _ ports.Report = (*Exporter)(nil)
