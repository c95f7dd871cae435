package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// EnvBaseDir overrides the base directory for all paths. When unset, paths
// are anchored at the executable directory, never the current working
// directory.
const EnvBaseDir = "GUT_BASE_DIR"

// Paths contains all the artifact locations for a pipeline run.
// Directory layout:
//
//	<base>/
//	  ├── input/
//	  │   └── data_real.csv        (measurement table, semicolon-delimited)
//	  ├── output/
//	  │   ├── fecal_data.csv
//	  │   ├── cecal_data.csv
//	  │   ├── ileal_data.csv
//	  │   ├── subsets.xlsx
//	  │   └── manifest.json
//	  ├── images/
//	  │   ├── fecal_line_plot.png
//	  │   ├── cecal_violin_plot.png
//	  │   └── ileal_violin_plot.png
//	  └── logs/
type Paths struct {
	BaseDir   string
	InputDir  string
	OutputDir string
	ImagesDir string
	LogsDir   string

	// Well-known files
	InputCSV     string
	FecalPlotPNG string
	SubsetsXLSX  string
	ManifestJSON string
}

// NewPaths returns the artifact layout rooted at baseDir
func NewPaths(baseDir string) *Paths {
	inputDir := filepath.Join(baseDir, "input")
	outputDir := filepath.Join(baseDir, "output")
	imagesDir := filepath.Join(baseDir, "images")

	return &Paths{
		BaseDir:   baseDir,
		InputDir:  inputDir,
		OutputDir: outputDir,
		ImagesDir: imagesDir,
		LogsDir:   filepath.Join(baseDir, "logs"),

		InputCSV:     filepath.Join(inputDir, "data_real.csv"),
		FecalPlotPNG: filepath.Join(imagesDir, "fecal_line_plot.png"),
		SubsetsXLSX:  filepath.Join(outputDir, "subsets.xlsx"),
		ManifestJSON: filepath.Join(outputDir, "manifest.json"),
	}
}

// GetPaths resolves the artifact layout. The base directory comes from
// GUT_BASE_DIR when set, otherwise from the executable location.
func GetPaths() (*Paths, error) {
	base, err := baseDir()
	if err != nil {
		return nil, err
	}
	return NewPaths(base), nil
}

// baseDir returns the directory all paths are anchored at
func baseDir() (string, error) {
	if dir := os.Getenv(EnvBaseDir); dir != "" {
		return dir, nil
	}

	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("failed to get executable path: %w", err)
	}
	exe, err = filepath.EvalSymlinks(exe)
	if err != nil {
		return "", fmt.Errorf("failed to resolve executable symlinks: %w", err)
	}
	return filepath.Dir(exe), nil
}

// EnsureDirectories creates the output, images and logs directories if they
// don't exist. The input directory is expected to be provided by the user.
func (p *Paths) EnsureDirectories() error {
	directories := []string{
		p.OutputDir,
		p.ImagesDir,
		p.LogsDir,
	}

	for _, dir := range directories {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
		slog.Debug("Ensured directory exists", slog.String("directory", dir))
	}

	return nil
}

// GetSubsetCSVPath returns the CSV location for a filtered subset,
// e.g. output/fecal_data.csv
func (p *Paths) GetSubsetCSVPath(sampleType string) string {
	return filepath.Join(p.OutputDir, sampleType+"_data.csv")
}

// GetViolinPlotPath returns the violin chart location for an organ,
// e.g. images/cecal_violin_plot.png
func (p *Paths) GetViolinPlotPath(organType string) string {
	return filepath.Join(p.ImagesDir, organType+"_violin_plot.png")
}

// GetLogPath returns the full path for a log file
func (p *Paths) GetLogPath(filename string) string {
	return filepath.Join(p.LogsDir, filename)
}

// FileExists checks if a file exists
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}
