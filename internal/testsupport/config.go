// Package testsupport provides fixtures shared by package tests: temp-dir
// backed configs, title directory layouts, and history store helpers.
package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"mergehelper/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.RootDir = filepath.Join(base, "roms")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Merge.BinmergePath = filepath.Join(base, "binmerge")
	cfgVal.Merge.Retention = "never-delete"

	for _, dir := range []string{cfgVal.Paths.RootDir, cfgVal.Paths.LogDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", dir, err)
		}
	}

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}
	for _, opt := range opts {
		opt(builder)
	}
	return builder.cfg
}

// WithRetention overrides the retention mode on the test config.
func WithRetention(mode string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Merge.Retention = mode
	}
}

// WithNameBy overrides the naming policy on the test config.
func WithNameBy(policy string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Merge.NameBy = policy
	}
}

// WithBinmergeScript writes a stub binmerge script file so preflight checks pass.
func WithBinmergeScript() ConfigOption {
	return func(b *configBuilder) {
		if err := os.WriteFile(b.cfg.Merge.BinmergePath, []byte("#!/usr/bin/env python3\n"), 0o755); err != nil {
			b.t.Fatalf("write stub binmerge: %v", err)
		}
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.RootDir)
}
