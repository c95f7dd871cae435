package exporter

import (
	"encoding/csv"
	"os"
	"strconv"
	"strings"
	"testing"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gutpipe/internal/config"
)

func testSubset(t *testing.T) dataframe.DataFrame {
	t.Helper()
	df := dataframe.LoadRecords([][]string{
		{"treatment", "counts_live_bacteria_per_wet_g"},
		{"ABX", "42000000"},
		{"placebo", "500000000"},
	}, dataframe.DetectTypes(false), dataframe.DefaultType(series.String))
	require.NoError(t, df.Error())
	return df
}

func TestWriteSubsetCSV(t *testing.T) {
	paths := config.NewPaths(t.TempDir())
	w := NewWriter(paths)

	path, err := w.WriteSubsetCSV("cecal", testSubset(t))
	require.NoError(t, err)
	assert.Equal(t, paths.GetSubsetCSVPath("cecal"), path)

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"treatment", "counts_live_bacteria_per_wet_g"}, records[0])
	assert.Equal(t, "ABX", records[1][0])

	count, err := strconv.ParseFloat(records[1][1], 64)
	require.NoError(t, err)
	assert.InDelta(t, 4.2e7, count, 1e-9)
}

func TestWriteSubsetCSVDeterministic(t *testing.T) {
	paths := config.NewPaths(t.TempDir())
	w := NewWriter(paths)
	df := testSubset(t)

	path, err := w.WriteSubsetCSV("cecal", df)
	require.NoError(t, err)
	first, err := os.ReadFile(path)
	require.NoError(t, err)

	_, err = w.WriteSubsetCSV("cecal", df)
	require.NoError(t, err)
	second, err := os.ReadFile(path)
	require.NoError(t, err)

	assert.Equal(t, first, second, "re-running on unchanged input must be byte-identical")
}

func TestWriteSubsetCSVKeepsMissingRows(t *testing.T) {
	paths := config.NewPaths(t.TempDir())
	w := NewWriter(paths)

	df := dataframe.LoadRecords([][]string{
		{"treatment", "counts_live_bacteria_per_wet_g"},
		{"ABX", "N/A"},
	}, dataframe.DetectTypes(false), dataframe.DefaultType(series.String))
	require.NoError(t, df.Error())

	// Coerce the count so the missing value is an explicit NaN
	coerced := df.Mutate(series.New(df.Col("counts_live_bacteria_per_wet_g").Float(), series.Float, "counts_live_bacteria_per_wet_g"))
	require.NoError(t, coerced.Error())

	path, err := w.WriteSubsetCSV("ileal", coerced)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2, "missing counts keep their row")
	assert.Contains(t, lines[1], "NaN")
}
