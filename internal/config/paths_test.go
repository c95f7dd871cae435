package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPathsLayout(t *testing.T) {
	p := NewPaths("/base")

	assert.Equal(t, filepath.Join("/base", "input", "data_real.csv"), p.InputCSV)
	assert.Equal(t, filepath.Join("/base", "images", "fecal_line_plot.png"), p.FecalPlotPNG)
	assert.Equal(t, filepath.Join("/base", "output", "subsets.xlsx"), p.SubsetsXLSX)
	assert.Equal(t, filepath.Join("/base", "output", "manifest.json"), p.ManifestJSON)

	assert.Equal(t, filepath.Join("/base", "output", "fecal_data.csv"), p.GetSubsetCSVPath("fecal"))
	assert.Equal(t, filepath.Join("/base", "output", "cecal_data.csv"), p.GetSubsetCSVPath("cecal"))
	assert.Equal(t, filepath.Join("/base", "images", "ileal_violin_plot.png"), p.GetViolinPlotPath("ileal"))
	assert.Equal(t, filepath.Join("/base", "logs", "gutpipe.log"), p.GetLogPath("gutpipe.log"))
}

func TestGetPathsEnvOverride(t *testing.T) {
	base := t.TempDir()
	t.Setenv(EnvBaseDir, base)

	p, err := GetPaths()
	require.NoError(t, err)
	assert.Equal(t, base, p.BaseDir)
}

func TestEnsureDirectories(t *testing.T) {
	base := t.TempDir()
	p := NewPaths(base)

	require.NoError(t, p.EnsureDirectories())

	for _, dir := range []string{p.OutputDir, p.ImagesDir, p.LogsDir} {
		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}

	// Input directory is the user's responsibility
	_, err := os.Stat(p.InputDir)
	assert.True(t, os.IsNotExist(err))
}

func TestFileExists(t *testing.T) {
	base := t.TempDir()
	path := filepath.Join(base, "probe")

	assert.False(t, FileExists(path))
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
	assert.True(t, FileExists(path))
}
