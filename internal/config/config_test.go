package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadParsesAndNormalizes(t *testing.T) {
	root := t.TempDir()
	path := writeConfig(t, `
[paths]
root_dir = "`+root+`/"
log_dir = "`+filepath.Join(root, "logs")+`"

[merge]
name_by = "CUE"
retention = "never-delete"
timeout_seconds = 60
`)

	cfg, resolved, exists, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !exists {
		t.Fatal("expected config file to be reported as existing")
	}
	if resolved != path {
		t.Fatalf("resolved path = %q, want %q", resolved, path)
	}
	if cfg.Paths.RootDir != root {
		t.Fatalf("root_dir = %q, want %q (trailing separator trimmed)", cfg.Paths.RootDir, root)
	}
	if cfg.Merge.NameBy != "cue" {
		t.Fatalf("name_by = %q, want lowercased cue", cfg.Merge.NameBy)
	}
	if cfg.Merge.Retention != "never-delete" {
		t.Fatalf("retention = %q", cfg.Merge.Retention)
	}
	if cfg.Merge.TimeoutSeconds != 60 {
		t.Fatalf("timeout_seconds = %d", cfg.Merge.TimeoutSeconds)
	}
	if cfg.Merge.BackupDirName != "orig" {
		t.Fatalf("backup_dir_name default = %q", cfg.Merge.BackupDirName)
	}
}

func TestLoadRequiresRootDir(t *testing.T) {
	t.Setenv("MERGEHELPER_ROOT", "")
	path := writeConfig(t, "[paths]\nlog_dir = \""+t.TempDir()+"\"\n")
	_, _, _, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "paths.root_dir") {
		t.Fatalf("expected root_dir validation error, got %v", err)
	}
}

func TestLoadRootDirFromEnv(t *testing.T) {
	root := t.TempDir()
	t.Setenv("MERGEHELPER_ROOT", root)
	path := writeConfig(t, "[paths]\nlog_dir = \""+filepath.Join(root, "logs")+"\"\n")
	cfg, _, _, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Paths.RootDir != root {
		t.Fatalf("root_dir = %q, want %q", cfg.Paths.RootDir, root)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"bad name_by", func(c *Config) { c.Merge.NameBy = "hash" }, "merge.name_by"},
		{"bad retention", func(c *Config) { c.Merge.Retention = "sometimes" }, "merge.retention"},
		{"bad format", func(c *Config) { c.Logging.Format = "xml" }, "logging.format"},
		{"bad level", func(c *Config) { c.Logging.Level = "trace" }, "logging.level"},
		{"nested backup dir", func(c *Config) { c.Merge.BackupDirName = "a/b" }, "merge.backup_dir_name"},
		{"relative root", func(c *Config) { c.Paths.RootDir = "roms" }, "must be absolute"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			cfg.Paths.RootDir = t.TempDir()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error mentioning %q, got %v", tc.want, err)
			}
		})
	}
}

func TestCreateSampleRoundTrips(t *testing.T) {
	target := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := CreateSample(target); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}
	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if !strings.Contains(string(data), "[merge]") {
		t.Fatal("sample config missing [merge] section")
	}
}

func TestExpandPathTilde(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	got, err := ExpandPath("~/roms")
	if err != nil {
		t.Fatalf("ExpandPath: %v", err)
	}
	if got != filepath.Join(home, "roms") {
		t.Fatalf("got %q", got)
	}
}
