// gutpipe filters the mouse gut bacterial-count table into fecal, cecal and
// ileal subsets and renders their charts. Invocation is parameterless; all
// locations are fixed relative to the base directory.
package main

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"gutpipe/internal/app"
	"gutpipe/internal/config"
	"gutpipe/internal/infrastructure"
)

func main() {
	paths, err := config.GetPaths()
	if err != nil {
		slog.Error("Failed to initialize paths", "error", err)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	// Anchor a relative log file under the logs directory
	if !filepath.IsAbs(cfg.Logging.FilePath) {
		cfg.Logging.FilePath = paths.GetLogPath(filepath.Base(cfg.Logging.FilePath))
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}
	defer infrastructure.CloseLogFile()

	if err := paths.EnsureDirectories(); err != nil {
		logger.Error("Failed to create required directories", "error", err)
		os.Exit(1)
	}

	ctx := infrastructure.WithRunID(context.Background())

	logger.InfoContext(ctx, "Starting gut bacterial-count pipeline",
		slog.String("base_dir", paths.BaseDir),
		slog.String("input", paths.InputCSV))

	pipeline, err := app.New(cfg, paths, logger)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to build pipeline", "error", err)
		os.Exit(1)
	}

	if err := pipeline.Run(ctx); err != nil {
		logger.ErrorContext(ctx, "Pipeline failed", "error", err)
		infrastructure.CloseLogFile()
		os.Exit(1)
	}
}
