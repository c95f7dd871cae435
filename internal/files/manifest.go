// Package files tracks the artifacts a pipeline run produces and writes the
// run manifest for downstream consumers.
package files

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"gutpipe/internal/config"
	"gutpipe/internal/infrastructure"
)

// Artifact describes one file produced by a pipeline run
type Artifact struct {
	Kind  string `json:"kind"` // "csv", "image" or "workbook"
	Path  string `json:"path"`
	Rows  int    `json:"rows,omitempty"`
	Bytes int64  `json:"bytes"`
}

// Manifest is the JSON document written at the end of a run
type Manifest struct {
	RunID       string     `json:"run_id,omitempty"`
	GeneratedAt time.Time  `json:"generated_at"`
	Artifacts   []Artifact `json:"artifacts"`
}

// Manager accumulates run artifacts and writes the manifest
type Manager struct {
	paths     *config.Paths
	artifacts []Artifact
}

// NewManager creates a new artifact manager
func NewManager(paths *config.Paths) *Manager {
	return &Manager{paths: paths}
}

// Record registers an artifact the run produced. rows is 0 for artifacts
// without a row count (images, workbooks).
func (m *Manager) Record(kind, path string, rows int) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat artifact %s: %w", path, err)
	}

	artifact := Artifact{
		Kind:  kind,
		Path:  path,
		Rows:  rows,
		Bytes: info.Size(),
	}
	m.artifacts = append(m.artifacts, artifact)

	slog.Debug("Recorded artifact",
		slog.String("kind", kind),
		slog.String("path", path),
		slog.Int64("bytes", artifact.Bytes))

	return nil
}

// Artifacts returns the artifacts recorded so far
func (m *Manager) Artifacts() []Artifact {
	return m.artifacts
}

// WriteManifest writes the run manifest and returns its path
func (m *Manager) WriteManifest(ctx context.Context) (string, error) {
	manifest := Manifest{
		RunID:       infrastructure.GetRunID(ctx),
		GeneratedAt: time.Now().UTC(),
		Artifacts:   m.artifacts,
	}

	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal manifest: %w", err)
	}

	path := m.paths.ManifestJSON
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return "", fmt.Errorf("failed to write manifest: %w", err)
	}

	slog.Info("Wrote run manifest",
		slog.String("path", path),
		slog.Int("artifacts", len(m.artifacts)))

	return path, nil
}
