package exporter

import (
	"strconv"
	"testing"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"gutpipe/internal/config"
)

func TestWriteWorkbook(t *testing.T) {
	paths := config.NewPaths(t.TempDir())
	require.NoError(t, paths.EnsureDirectories())
	w := NewWriter(paths)

	fecal := dataframe.LoadRecords([][]string{
		{"mouse_ID", "treatment", "experimental_day", "counts_live_bacteria_per_wet_g"},
		{"1", "ABX", "3", "120000"},
		{"2", "placebo", "3", "N/A"},
	}, dataframe.DetectTypes(false), dataframe.DefaultType(series.String))
	require.NoError(t, fecal.Error())

	cecal := dataframe.LoadRecords([][]string{
		{"treatment", "counts_live_bacteria_per_wet_g"},
		{"ABX", "42000000"},
	}, dataframe.DetectTypes(false), dataframe.DefaultType(series.String))
	require.NoError(t, cecal.Error())

	path, err := w.WriteWorkbook([]Subset{
		{Name: "fecal", Frame: fecal},
		{Name: "cecal", Frame: cecal},
	})
	require.NoError(t, err)
	assert.Equal(t, paths.SubsetsXLSX, path)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.ElementsMatch(t, []string{"fecal", "cecal"}, f.GetSheetList())

	rows, err := f.GetRows("fecal")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "counts_live_bacteria_per_wet_g", rows[0][3])

	count, err := strconv.ParseFloat(rows[1][3], 64)
	require.NoError(t, err)
	assert.InDelta(t, 120000.0, count, 1e-9)

	// A missing count leaves the cell empty
	value, err := f.GetCellValue("fecal", "D3")
	require.NoError(t, err)
	assert.Empty(t, value)
}

func TestWriteWorkbookEmpty(t *testing.T) {
	paths := config.NewPaths(t.TempDir())
	w := NewWriter(paths)

	_, err := w.WriteWorkbook(nil)
	require.Error(t, err)
}
