package preflight

import (
	"context"
	"fmt"
	"os"

	"mergehelper/internal/config"
	"mergehelper/internal/deps"
)

// CheckDirectoryAccess verifies a directory exists and is readable.
func CheckDirectoryAccess(name, dir string) Result {
	result := Result{Name: name}
	if dir == "" {
		result.Detail = "not configured"
		return result
	}
	info, err := os.Stat(dir)
	if err != nil {
		result.Detail = err.Error()
		return result
	}
	if !info.IsDir() {
		result.Detail = fmt.Sprintf("%s is not a directory", dir)
		return result
	}
	if _, err := os.ReadDir(dir); err != nil {
		result.Detail = err.Error()
		return result
	}
	result.Passed = true
	return result
}

// CheckBinary verifies a binary is resolvable on PATH.
func CheckBinary(name, command string) Result {
	statuses := deps.CheckBinaries([]deps.Requirement{{Name: name, Command: command}})
	status := statuses[0]
	return Result{Name: name, Passed: status.Available, Detail: status.Detail}
}

// CheckBinmerge ensures the binmerge script is present, downloading it when
// missing.
func CheckBinmerge(ctx context.Context, cfg *config.Config) Result {
	result := Result{Name: "binmerge script"}
	path, err := deps.EnsureBinmerge(ctx, cfg)
	if err != nil {
		result.Detail = err.Error()
		return result
	}
	result.Passed = true
	result.Detail = path
	return result
}
