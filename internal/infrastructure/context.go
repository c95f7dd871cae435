package infrastructure

import (
	"context"

	"github.com/google/uuid"
)

// contextKey is a type for context keys
type contextKey string

// RunIDContextKey is the key for storing the run ID in context
const RunIDContextKey contextKey = "run_id"

// WithRunID returns a context carrying a fresh run ID
func WithRunID(ctx context.Context) context.Context {
	return context.WithValue(ctx, RunIDContextKey, uuid.NewString())
}

// GetRunID extracts the run ID from context, or "" if absent
func GetRunID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if id, ok := ctx.Value(RunIDContextKey).(string); ok {
		return id
	}
	return ""
}
