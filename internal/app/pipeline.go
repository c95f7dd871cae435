// Package app sequences the pipeline: load once, then for each subset
// filter, persist and render, then write the workbook and the run manifest.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-gota/gota/dataframe"

	"gutpipe/internal/chart"
	"gutpipe/internal/config"
	"gutpipe/internal/dataprocessing"
	"gutpipe/internal/dataset"
	"gutpipe/internal/exporter"
	"gutpipe/internal/files"
)

// Pipeline wires the loader, filters, exporter and chart renderers in the
// fixed run order. Any stage failure aborts the run; nothing is retried.
type Pipeline struct {
	cfg       *config.Config
	paths     *config.Paths
	writer    *exporter.Writer
	renderer  *chart.Renderer
	artifacts *files.Manager
	logger    *slog.Logger
}

// New creates a pipeline over the given configuration
func New(cfg *config.Config, paths *config.Paths, logger *slog.Logger) (*Pipeline, error) {
	renderer, err := chart.NewRenderer(paths, cfg.Charts)
	if err != nil {
		return nil, fmt.Errorf("failed to build renderer: %w", err)
	}

	return &Pipeline{
		cfg:       cfg,
		paths:     paths,
		writer:    exporter.NewWriter(paths),
		renderer:  renderer,
		artifacts: files.NewManager(paths),
		logger:    logger,
	}, nil
}

// Run executes the full pipeline once
func (p *Pipeline) Run(ctx context.Context) error {
	start := time.Now()
	p.artifacts = files.NewManager(p.paths)

	if !config.FileExists(p.paths.InputCSV) {
		return fmt.Errorf("input table not found at %s", p.paths.InputCSV)
	}

	df, err := dataset.Load(p.paths.InputCSV)
	if err != nil {
		return fmt.Errorf("load stage failed: %w", err)
	}

	// Reject unexpected treatment arms before anything is rendered; a third
	// label would otherwise be invisible in every chart.
	if err := dataprocessing.VerifyTreatments(df); err != nil {
		return fmt.Errorf("treatment verification failed: %w", err)
	}

	var subsets []exporter.Subset

	// Fecal: time-series line plot
	fecal, err := dataprocessing.FilterFecal(df)
	if err != nil {
		return fmt.Errorf("fecal stage failed: %w", err)
	}
	if err := p.persistSubset(dataprocessing.SampleFecal, fecal); err != nil {
		return err
	}
	subsets = append(subsets, exporter.Subset{Name: dataprocessing.SampleFecal, Frame: fecal})

	imgPath, err := p.renderer.LinePlot(fecal)
	if err != nil {
		return fmt.Errorf("fecal stage failed: %w", err)
	}
	if err := p.artifacts.Record("image", imgPath, 0); err != nil {
		return err
	}

	// Organs: violin plots
	for _, organ := range []string{dataprocessing.SampleCecal, dataprocessing.SampleIleal} {
		sub, err := dataprocessing.FilterOrgan(df, organ, p.cfg.Data.OrganCollectionAge)
		if err != nil {
			return fmt.Errorf("%s stage failed: %w", organ, err)
		}
		if err := p.persistSubset(organ, sub); err != nil {
			return err
		}
		subsets = append(subsets, exporter.Subset{Name: organ, Frame: sub})

		imgPath, err := p.renderer.ViolinPlot(sub, organ)
		if err != nil {
			return fmt.Errorf("%s stage failed: %w", organ, err)
		}
		if err := p.artifacts.Record("image", imgPath, 0); err != nil {
			return err
		}
	}

	wbPath, err := p.writer.WriteWorkbook(subsets)
	if err != nil {
		return fmt.Errorf("workbook stage failed: %w", err)
	}
	if err := p.artifacts.Record("workbook", wbPath, 0); err != nil {
		return err
	}

	if _, err := p.artifacts.WriteManifest(ctx); err != nil {
		return fmt.Errorf("manifest stage failed: %w", err)
	}

	p.logger.InfoContext(ctx, "Pipeline complete",
		slog.Int("input_rows", df.Nrow()),
		slog.Int("artifacts", len(p.artifacts.Artifacts())),
		slog.Duration("duration", time.Since(start)))

	return nil
}

// persistSubset writes one filtered subset to CSV and records the artifact
func (p *Pipeline) persistSubset(name string, sub dataframe.DataFrame) error {
	path, err := p.writer.WriteSubsetCSV(name, sub)
	if err != nil {
		return fmt.Errorf("%s stage failed: %w", name, err)
	}
	return p.artifacts.Record("csv", path, sub.Nrow())
}
