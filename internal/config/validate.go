package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateMerge(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.Paths.RootDir) == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			defaultPath = "~/.config/mergehelper/config.toml"
		}
		return fmt.Errorf("paths.root_dir is required. Set MERGEHELPER_ROOT env var or edit %s (create with 'mergehelper config init')", defaultPath)
	}
	if !filepath.IsAbs(c.Paths.RootDir) {
		return fmt.Errorf("paths.root_dir must be absolute, got %q", c.Paths.RootDir)
	}
	return nil
}

func (c *Config) validateMerge() error {
	switch c.Merge.NameBy {
	case "folder", "cue":
	default:
		return fmt.Errorf("merge.name_by must be %q or %q, got %q", "folder", "cue", c.Merge.NameBy)
	}
	switch c.Merge.Retention {
	case "never-delete", "always-delete-on-success", "prompt-once":
	default:
		return fmt.Errorf("merge.retention must be one of never-delete, always-delete-on-success, prompt-once; got %q", c.Merge.Retention)
	}
	if c.Merge.TimeoutSeconds < 0 {
		return errors.New("merge.timeout_seconds must be positive")
	}
	if c.Merge.DownloadTimeout < 0 {
		return errors.New("merge.download_timeout must be positive")
	}
	if strings.ContainsAny(c.Merge.BackupDirName, "/\\") {
		return fmt.Errorf("merge.backup_dir_name must be a bare directory name, got %q", c.Merge.BackupDirName)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be %q or %q, got %q", "console", "json", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error; got %q", c.Logging.Level)
	}
	return nil
}
