package report

import (
	"os"
	"path/filepath"
	"testing"

	"eamlab/domain/abc"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleTable() *abc.ResampleMedianTable {
	return &abc.ResampleMedianTable{
		CILevel: 0.95,
		QLo:     0.025,
		QHi:     0.975,
		Rows: []abc.ResampleMedianRow{
			{Param: "v", Mean: 1.1, Median: 1.0, CILo: 0.8, CIHi: 1.3},
		},
	}
}

func TestExportReport_HeadersUseLiteralQuantileNames(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.xlsx")
	e := New()
	require.NoError(t, e.ExportReport(path, sampleTable(), nil))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	headers, err := f.GetRows("v")
	require.NoError(t, err)
	require.NotEmpty(t, headers)
	assert.Equal(t, []string{"mean", "median", "q_0.025", "q_0.975"}, headers[0])
}

func TestExportNarrative_HeaderUsesLiteralQuantileNames(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.md")
	e := New()
	require.NoError(t, e.ExportNarrative(path, sampleTable()))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), "| parameter | mean | median | q_0.025 | q_0.975 |")
}
