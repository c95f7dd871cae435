package chart

import (
	"fmt"
	"image/color"
	"log/slog"
	"math"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"gutpipe/internal/dataprocessing"
	"gutpipe/internal/dataset"
)

// violinHalfWidth is the maximum half-width of a violin body in X units;
// bodies sit at nominal positions 0 and 1.
const violinHalfWidth = 0.35

// ViolinPlot draws the organ distribution chart: one violin body per
// treatment at nominal X positions, overlaid with the raw points, black
// edges, log-scaled Y axis, X ticks labeled with the treatment names.
// Returns the image path written.
func (r *Renderer) ViolinPlot(df dataframe.DataFrame, organType string) (string, error) {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("Live bacteria in %s samples", organType)
	p.Y.Label.Text = "Live bacteria per wet g"
	p.Y.Scale = plot.LogScale{}
	p.Y.Tick.Marker = plot.LogTicks{Prec: -1}

	excluded := 0
	drew := false
	for i, treatment := range dataprocessing.Treatments {
		base := r.palette[treatment]
		x := float64(i)

		counts, dropped := treatmentCounts(df, treatment)
		excluded += dropped
		if len(counts) == 0 {
			slog.Warn("No drawable counts for treatment group",
				slog.String("chart", organType+"_violin_plot"),
				slog.String("treatment", treatment))
			continue
		}

		outline := violinOutline(counts, x, violinHalfWidth)
		if outline != nil {
			body, err := plotter.NewPolygon(outline)
			if err != nil {
				return "", fmt.Errorf("failed to build violin body for %s: %w", treatment, err)
			}
			body.Color = withAlpha(base, r.cfg.ViolinAlpha)
			body.LineStyle.Color = color.Black
			body.LineStyle.Width = vg.Points(1)
			p.Add(body)
		}

		points := make(plotter.XYs, len(counts))
		for j, v := range counts {
			points[j] = plotter.XY{X: x, Y: v}
		}
		scatter, err := plotter.NewScatter(points)
		if err != nil {
			return "", fmt.Errorf("failed to build scatter for %s: %w", treatment, err)
		}
		scatter.GlyphStyle.Color = base
		scatter.GlyphStyle.Radius = vg.Points(2.5)
		scatter.GlyphStyle.Shape = draw.CircleGlyph{}
		p.Add(scatter)
		drew = true
	}

	// A log axis cannot be ranged without at least one positive value
	if !drew {
		return "", fmt.Errorf("no drawable counts in %s subset", organType)
	}

	if excluded > 0 {
		slog.Warn("Excluded counts not drawable on a log axis",
			slog.String("chart", organType+"_violin_plot"),
			slog.Int("excluded", excluded))
	}

	p.NominalX(dataprocessing.Treatments...)

	out := r.paths.GetViolinPlotPath(organType)
	if err := p.Save(6*vg.Inch, 5*vg.Inch, out); err != nil {
		return "", fmt.Errorf("failed to save violin plot: %w", err)
	}

	slog.Info("Rendered violin plot",
		slog.String("organ_type", organType),
		slog.String("path", out))
	return out, nil
}

// treatmentCounts returns the positive, non-missing counts for one
// treatment group, plus the number of values excluded.
func treatmentCounts(df dataframe.DataFrame, treatment string) ([]float64, int) {
	tdf := df.Filter(dataframe.F{
		Colname:    dataset.ColTreatment,
		Comparator: series.Eq,
		Comparando: treatment,
	})
	if tdf.Error() != nil || tdf.Nrow() == 0 {
		return nil, 0
	}

	raw := tdf.Col(dataset.ColCounts).Float()
	counts := make([]float64, 0, len(raw))
	dropped := 0
	for _, v := range raw {
		if math.IsNaN(v) || v <= 0 {
			dropped++
			continue
		}
		counts = append(counts, v)
	}
	return counts, dropped
}
