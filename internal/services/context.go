package services

import "context"

type contextKey string

const (
	titleKey contextKey = "title"
	stepKey  contextKey = "step"
	runIDKey contextKey = "run_id"
)

// WithTitle annotates context with the title directory currently being processed.
func WithTitle(ctx context.Context, title string) context.Context {
	if title == "" {
		return ctx
	}
	return context.WithValue(ctx, titleKey, title)
}

// TitleFromContext extracts the current title name if present.
func TitleFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(titleKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithStep annotates context with the processing step (classify, backup, merge, restore).
func WithStep(ctx context.Context, step string) context.Context {
	if step == "" {
		return ctx
	}
	return context.WithValue(ctx, stepKey, step)
}

// StepFromContext returns the processing step if present.
func StepFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(stepKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithRunID annotates context with the sweep run identifier.
func WithRunID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, runIDKey, id)
}

// RunIDFromContext extracts the sweep run identifier if present.
func RunIDFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(runIDKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}
