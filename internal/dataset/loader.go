// Package dataset loads the raw measurement table into a dataframe.
package dataset

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// Column names of the measurement table.
const (
	ColMouseID         = "mouse_ID"
	ColTreatment       = "treatment"
	ColSampleType      = "sample_type"
	ColExperimentalDay = "experimental_day"
	ColMouseAgeDays    = "mouse_age_days"
	ColCounts          = "counts_live_bacteria_per_wet_g"
)

// RequiredColumns lists every column the pipeline reads.
var RequiredColumns = []string{
	ColMouseID,
	ColTreatment,
	ColSampleType,
	ColExperimentalDay,
	ColMouseAgeDays,
	ColCounts,
}

// Load reads the semicolon-delimited measurement table at path. All columns
// are kept as strings; the count column is coerced to numeric later by the
// filters so that unparsable values become missing rather than load errors.
func Load(path string) (dataframe.DataFrame, error) {
	f, err := os.Open(path)
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("failed to open input table: %w", err)
	}
	defer f.Close()

	df := dataframe.ReadCSV(f,
		dataframe.WithDelimiter(';'),
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
	)
	if df.Error() != nil {
		return dataframe.DataFrame{}, fmt.Errorf("failed to parse input table %s: %w", path, df.Error())
	}

	if err := verifyColumns(df); err != nil {
		return dataframe.DataFrame{}, err
	}

	slog.Info("Loaded measurement table",
		slog.String("path", path),
		slog.Int("rows", df.Nrow()),
		slog.Int("columns", len(df.Names())))

	return df, nil
}

// verifyColumns fails fast on a malformed table instead of letting a column
// lookup error surface mid-filter.
func verifyColumns(df dataframe.DataFrame) error {
	present := make(map[string]bool, len(df.Names()))
	for _, name := range df.Names() {
		present[name] = true
	}

	var missing []string
	for _, name := range RequiredColumns {
		if !present[name] {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("input table missing required columns: %s", strings.Join(missing, ", "))
	}
	return nil
}
