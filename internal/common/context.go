package common

import (
	"context"
	"time"
)

// Context keys for storing values in context
type contextKey string

const (
	ContextKeyRunID contextKey = "run_id"
	ContextKeyFile  contextKey = "file"
)

// WithRunID adds the organize pass ID to the context
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, ContextKeyRunID, runID)
}

// RunIDFromContext extracts the organize pass ID from context
func RunIDFromContext(ctx context.Context) string {
	if runID, ok := ctx.Value(ContextKeyRunID).(string); ok {
		return runID
	}
	return ""
}

// WithFile tags the context with the file currently being processed
func WithFile(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, ContextKeyFile, name)
}

// FileFromContext extracts the file name from context
func FileFromContext(ctx context.Context) string {
	if name, ok := ctx.Value(ContextKeyFile).(string); ok {
		return name
	}
	return ""
}

// WithOptionalTimeout applies timeout when it is positive and is a no-op otherwise.
func WithOptionalTimeout(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(parent)
	}
	return context.WithTimeout(parent, timeout)
}
