// Package logging assembles the structured slog loggers used across
// mergehelper.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and exposes context-aware helpers so sweep code can automatically
// tag log lines with the title and step being processed. Prefer these
// constructors over hand-rolled slog setup so every component emits data with
// the same shape.
package logging
