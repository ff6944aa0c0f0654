// Package preflight runs the checks that must pass before a sweep may touch
// the filesystem. A failed check aborts the whole run; per-title problems are
// the sweep's business, not preflight's.
package preflight

import (
	"context"

	"mergehelper/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes all preflight checks for the given config.
func RunAll(ctx context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{
		CheckDirectoryAccess("Game root directory", cfg.Paths.RootDir),
		CheckDirectoryAccess("Log directory", cfg.Paths.LogDir),
		CheckBinary("Python interpreter", cfg.Merge.PythonBinary),
		CheckBinmerge(ctx, cfg),
	}
	return results
}

// Passed reports whether every result passed.
func Passed(results []Result) bool {
	for _, result := range results {
		if !result.Passed {
			return false
		}
	}
	return true
}
