package exporter

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/go-gota/gota/dataframe"

	"gutpipe/internal/config"
)

// Writer persists filtered subsets to their configured locations
type Writer struct {
	paths *config.Paths
}

// NewWriter creates a new subset writer
func NewWriter(paths *config.Paths) *Writer {
	return &Writer{paths: paths}
}

// Subset pairs a filtered dataframe with the sample type it was filtered for
type Subset struct {
	Name  string
	Frame dataframe.DataFrame
}

// WriteSubsetCSV writes a filtered subset to output/<name>_data.csv with a
// header row. Output is deterministic for unchanged input: the same frame
// always serializes to the same bytes. Returns the path written.
func (w *Writer) WriteSubsetCSV(name string, df dataframe.DataFrame) (string, error) {
	path := w.paths.GetSubsetCSVPath(name)

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create subset file: %w", err)
	}
	defer file.Close()

	if err := df.WriteCSV(file, dataframe.WriteHeader(true)); err != nil {
		return "", fmt.Errorf("failed to write subset %s: %w", name, err)
	}

	slog.Info("Wrote subset CSV",
		slog.String("subset", name),
		slog.String("path", path),
		slog.Int("rows", df.Nrow()))

	return path, nil
}
