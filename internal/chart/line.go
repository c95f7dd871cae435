package chart

import (
	"fmt"
	"log/slog"
	"math"
	"sort"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"gutpipe/internal/config"
	"gutpipe/internal/dataprocessing"
	"gutpipe/internal/dataset"
)

// Renderer draws the pipeline's figures to PNG files
type Renderer struct {
	paths   *config.Paths
	cfg     config.ChartsConfig
	palette palette
}

// NewRenderer creates a renderer with the configured treatment palette
func NewRenderer(paths *config.Paths, cfg config.ChartsConfig) (*Renderer, error) {
	pal, err := newPalette(cfg)
	if err != nil {
		return nil, err
	}
	return &Renderer{paths: paths, cfg: cfg, palette: pal}, nil
}

// LinePlot draws the fecal time series: for each treatment, one
// semi-transparent connected line plus scatter markers per mouse, count
// against experimental day, on a log-scaled Y axis, with one legend entry
// per treatment. Returns the image path written.
func (r *Renderer) LinePlot(df dataframe.DataFrame) (string, error) {
	p := plot.New()
	p.Title.Text = "Live bacteria in fecal samples"
	p.X.Label.Text = "Experimental day"
	p.Y.Label.Text = "Live bacteria per wet g"
	p.Y.Scale = plot.LogScale{}
	p.Y.Tick.Marker = plot.LogTicks{Prec: -1}
	p.Legend.Top = true

	excluded := 0
	drew := false
	for _, treatment := range dataprocessing.Treatments {
		base := r.palette[treatment]
		lineColor := withAlpha(base, r.cfg.LineAlpha)

		tdf := df.Filter(dataframe.F{
			Colname:    dataset.ColTreatment,
			Comparator: series.Eq,
			Comparando: treatment,
		})
		if tdf.Error() != nil {
			return "", fmt.Errorf("treatment split failed: %w", tdf.Error())
		}

		for _, mouse := range uniqueInOrder(tdf.Col(dataset.ColMouseID).Records()) {
			mdf := tdf.Filter(dataframe.F{
				Colname:    dataset.ColMouseID,
				Comparator: series.Eq,
				Comparando: mouse,
			})
			if mdf.Error() != nil {
				return "", fmt.Errorf("mouse split failed: %w", mdf.Error())
			}

			xys, dropped := timeSeries(mdf)
			excluded += dropped
			if len(xys) == 0 {
				continue
			}

			line, err := plotter.NewLine(xys)
			if err != nil {
				return "", fmt.Errorf("failed to build line for mouse %s: %w", mouse, err)
			}
			line.LineStyle.Color = lineColor
			line.LineStyle.Width = vg.Points(1.5)

			scatter, err := plotter.NewScatter(xys)
			if err != nil {
				return "", fmt.Errorf("failed to build scatter for mouse %s: %w", mouse, err)
			}
			scatter.GlyphStyle.Color = base
			scatter.GlyphStyle.Radius = vg.Points(2)
			scatter.GlyphStyle.Shape = draw.CircleGlyph{}

			p.Add(line, scatter)
			drew = true
		}

		// Legend entry carries only color and label; it is not added to the
		// plot so it does not influence axis ranges.
		entry, err := plotter.NewLine(plotter.XYs{})
		if err != nil {
			return "", fmt.Errorf("failed to build legend entry: %w", err)
		}
		entry.LineStyle.Color = base
		entry.LineStyle.Width = vg.Points(2)
		p.Legend.Add(treatment, entry)
	}

	// A log axis cannot be ranged without at least one positive value
	if !drew {
		return "", fmt.Errorf("no drawable counts in fecal subset")
	}

	if excluded > 0 {
		slog.Warn("Excluded counts not drawable on a log axis",
			slog.String("chart", "fecal_line_plot"),
			slog.Int("excluded", excluded))
	}

	out := r.paths.FecalPlotPNG
	if err := p.Save(8*vg.Inch, 5*vg.Inch, out); err != nil {
		return "", fmt.Errorf("failed to save line plot: %w", err)
	}

	slog.Info("Rendered line plot", slog.String("path", out))
	return out, nil
}

// timeSeries extracts (day, count) points for one mouse, sorted by day.
// Points with a missing day or a missing/non-positive count are dropped and
// counted in the second return value.
func timeSeries(df dataframe.DataFrame) (plotter.XYs, int) {
	days := df.Col(dataset.ColExperimentalDay).Float()
	counts := df.Col(dataset.ColCounts).Float()

	xys := make(plotter.XYs, 0, len(days))
	dropped := 0
	for i := range days {
		if math.IsNaN(days[i]) || math.IsNaN(counts[i]) || counts[i] <= 0 {
			dropped++
			continue
		}
		xys = append(xys, plotter.XY{X: days[i], Y: counts[i]})
	}

	sort.SliceStable(xys, func(i, j int) bool { return xys[i].X < xys[j].X })
	return xys, dropped
}

// uniqueInOrder returns values deduplicated, preserving first appearance
func uniqueInOrder(values []string) []string {
	seen := make(map[string]bool, len(values))
	var out []string
	for _, v := range values {
		if seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
