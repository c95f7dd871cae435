package dataprocessing

import (
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"gutpipe/internal/dataset"
)

// Sample types present in the measurement table.
const (
	SampleFecal = "fecal"
	SampleCecal = "cecal"
	SampleIleal = "ileal"
)

// Treatment arms of the study.
const (
	TreatmentABX     = "ABX"
	TreatmentPlacebo = "placebo"
)

// Treatments lists the recognized arms in legend/axis order.
var Treatments = []string{TreatmentABX, TreatmentPlacebo}

// FecalColumns is the projection kept for fecal samples.
var FecalColumns = []string{
	dataset.ColMouseID,
	dataset.ColTreatment,
	dataset.ColExperimentalDay,
	dataset.ColCounts,
}

// OrganColumns is the projection kept for cecal and ileal samples.
var OrganColumns = []string{
	dataset.ColTreatment,
	dataset.ColCounts,
}

// FilterFecal selects the fecal rows of the measurement table, projected to
// mouse, treatment, day and count, with the count column coerced to numeric.
// Row order follows the input table.
func FilterFecal(df dataframe.DataFrame) (dataframe.DataFrame, error) {
	sub := df.Filter(dataframe.F{
		Colname:    dataset.ColSampleType,
		Comparator: series.Eq,
		Comparando: SampleFecal,
	})
	if sub.Error() != nil {
		return sub, fmt.Errorf("fecal filter failed: %w", sub.Error())
	}

	sub = sub.Select(FecalColumns)
	if sub.Error() != nil {
		return sub, fmt.Errorf("fecal projection failed: %w", sub.Error())
	}

	out, err := CoerceCounts(sub)
	if err != nil {
		return out, err
	}

	slog.Info("Filtered fecal subset", slog.Int("rows", out.Nrow()))
	return out, nil
}

// FilterOrgan selects the rows of the given organ sample type collected at
// the organ collection age, projected to treatment and count, with the count
// column coerced to numeric. Row order follows the input table.
func FilterOrgan(df dataframe.DataFrame, organType string, collectionAge int) (dataframe.DataFrame, error) {
	if organType != SampleCecal && organType != SampleIleal {
		return dataframe.DataFrame{}, fmt.Errorf("unknown organ sample type %q", organType)
	}

	sub := df.Filter(dataframe.F{
		Colname:    dataset.ColSampleType,
		Comparator: series.Eq,
		Comparando: organType,
	}).Filter(dataframe.F{
		Colname:    dataset.ColMouseAgeDays,
		Comparator: series.Eq,
		Comparando: strconv.Itoa(collectionAge),
	})
	if sub.Error() != nil {
		return sub, fmt.Errorf("%s filter failed: %w", organType, sub.Error())
	}

	sub = sub.Select(OrganColumns)
	if sub.Error() != nil {
		return sub, fmt.Errorf("%s projection failed: %w", organType, sub.Error())
	}

	out, err := CoerceCounts(sub)
	if err != nil {
		return out, err
	}

	slog.Info("Filtered organ subset",
		slog.String("organ_type", organType),
		slog.Int("collection_age", collectionAge),
		slog.Int("rows", out.Nrow()))
	return out, nil
}

// CoerceCounts converts the count column to floats. Scientific-notation text
// such as "1.2E5" parses normally; values that cannot be parsed become NaN
// rather than an error, and no row is dropped. Coercion is idempotent: an
// already-numeric column round-trips unchanged.
func CoerceCounts(df dataframe.DataFrame) (dataframe.DataFrame, error) {
	col := df.Col(dataset.ColCounts)
	if col.Err != nil {
		return df, fmt.Errorf("count column lookup failed: %w", col.Err)
	}

	coerced := series.New(col.Float(), series.Float, dataset.ColCounts)
	out := df.Mutate(coerced)
	if out.Error() != nil {
		return out, fmt.Errorf("count coercion failed: %w", out.Error())
	}
	return out, nil
}

// VerifyTreatments returns an error naming every treatment label in df that
// is not one of the recognized arms.
func VerifyTreatments(df dataframe.DataFrame) error {
	col := df.Col(dataset.ColTreatment)
	if col.Err != nil {
		return fmt.Errorf("treatment column lookup failed: %w", col.Err)
	}

	recognized := make(map[string]bool, len(Treatments))
	for _, t := range Treatments {
		recognized[t] = true
	}

	seen := make(map[string]bool)
	var unknown []string
	for _, label := range col.Records() {
		if recognized[label] || seen[label] {
			continue
		}
		seen[label] = true
		unknown = append(unknown, label)
	}

	if len(unknown) > 0 {
		sort.Strings(unknown)
		return fmt.Errorf("unrecognized treatment labels: %s", strings.Join(unknown, ", "))
	}
	return nil
}
