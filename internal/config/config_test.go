package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv(EnvBaseDir, t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Output)
	assert.Equal(t, 21, cfg.Data.OrganCollectionAge)
	assert.Equal(t, "#D62728", cfg.Charts.ABXColor)
	assert.Equal(t, "#1F77B4", cfg.Charts.PlaceboColor)
	assert.InDelta(t, 0.45, cfg.Charts.LineAlpha, 1e-9)
	assert.InDelta(t, 0.55, cfg.Charts.ViolinAlpha, 1e-9)
}

func TestLoadFromFile(t *testing.T) {
	base := t.TempDir()
	t.Setenv(EnvBaseDir, base)

	content := []byte("data:\n  organ_collection_age: 23\ncharts:\n  abx_color: \"#FF0000\"\n")
	require.NoError(t, os.WriteFile(filepath.Join(base, "config.yaml"), content, 0644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 23, cfg.Data.OrganCollectionAge)
	assert.Equal(t, "#FF0000", cfg.Charts.ABXColor)
	// Untouched fields keep their defaults
	assert.Equal(t, "#1F77B4", cfg.Charts.PlaceboColor)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	base := t.TempDir()
	t.Setenv(EnvBaseDir, base)

	content := []byte("data:\n  organ_collection_age: 23\n")
	require.NoError(t, os.WriteFile(filepath.Join(base, "config.yaml"), content, 0644))
	t.Setenv("GUT_DATA_ORGAN_COLLECTION_AGE", "28")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 28, cfg.Data.OrganCollectionAge)
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "bad log level", key: "GUT_LOGGING_LEVEL", value: "verbose"},
		{name: "bad color", key: "GUT_CHARTS_ABX_COLOR", value: "red"},
		{name: "zero collection age", key: "GUT_DATA_ORGAN_COLLECTION_AGE", value: "0"},
		{name: "alpha out of range", key: "GUT_CHARTS_LINE_ALPHA", value: "1.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EnvBaseDir, t.TempDir())
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), "config validation failed")
		})
	}
}
