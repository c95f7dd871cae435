package exporter

import (
	"fmt"
	"log/slog"
	"math"
	"strconv"

	"github.com/xuri/excelize/v2"

	"gutpipe/internal/dataset"
)

// WriteWorkbook writes every subset to one XLSX workbook, a sheet per
// subset. Count cells are written as numbers; missing counts stay empty so
// spreadsheet formulas skip them. Returns the path written.
func (w *Writer) WriteWorkbook(subsets []Subset) (string, error) {
	if len(subsets) == 0 {
		return "", fmt.Errorf("no subsets to write")
	}

	f := excelize.NewFile()
	defer f.Close()

	for i, subset := range subsets {
		sheet := subset.Name
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
				return "", fmt.Errorf("failed to name sheet %s: %w", sheet, err)
			}
		} else {
			if _, err := f.NewSheet(sheet); err != nil {
				return "", fmt.Errorf("failed to add sheet %s: %w", sheet, err)
			}
		}

		if err := writeSheet(f, sheet, subset); err != nil {
			return "", err
		}
	}

	path := w.paths.SubsetsXLSX
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("failed to save workbook: %w", err)
	}

	slog.Info("Wrote subsets workbook",
		slog.String("path", path),
		slog.Int("sheets", len(subsets)))

	return path, nil
}

// writeSheet fills one sheet with a subset's header and records
func writeSheet(f *excelize.File, sheet string, subset Subset) error {
	records := subset.Frame.Records()
	countCol := -1
	for col, name := range records[0] {
		if name == dataset.ColCounts {
			countCol = col
		}
	}

	for row, record := range records {
		for col, value := range record {
			cell, err := excelize.CoordinatesToCellName(col+1, row+1)
			if err != nil {
				return fmt.Errorf("failed to address cell: %w", err)
			}

			// Header row and non-count columns go in as text
			if row == 0 || col != countCol {
				if err := f.SetCellValue(sheet, cell, value); err != nil {
					return fmt.Errorf("failed to set cell %s!%s: %w", sheet, cell, err)
				}
				continue
			}

			count, err := strconv.ParseFloat(value, 64)
			if err != nil || math.IsNaN(count) {
				continue // missing count, leave the cell empty
			}
			if err := f.SetCellValue(sheet, cell, count); err != nil {
				return fmt.Errorf("failed to set cell %s!%s: %w", sheet, cell, err)
			}
		}
	}
	return nil
}
