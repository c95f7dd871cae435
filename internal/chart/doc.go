// Package chart renders the pipeline's figures: a per-mouse time series for
// fecal counts and per-treatment violin distributions for organ counts.
//
// Both charts use a log-scaled Y axis. Counts that are missing or
// non-positive cannot be placed on a log axis; they are excluded from the
// figure and the exclusion count is logged. Rendering is a scoped
// draw-save-release on an off-screen canvas; no display backend is attached.
package chart
