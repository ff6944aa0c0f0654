package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizeMerge(); err != nil {
		return err
	}
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	c.Paths.RootDir = strings.TrimSpace(c.Paths.RootDir)
	if c.Paths.RootDir == "" {
		if value, ok := os.LookupEnv("MERGEHELPER_ROOT"); ok {
			c.Paths.RootDir = strings.TrimSpace(value)
		}
	}
	if c.Paths.RootDir != "" {
		// Trailing separators make per-title path joins unpredictable.
		c.Paths.RootDir = strings.TrimRight(c.Paths.RootDir, "/\\")
		if c.Paths.RootDir, err = expandPath(c.Paths.RootDir); err != nil {
			return fmt.Errorf("paths.root_dir: %w", err)
		}
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeMerge() error {
	var err error
	c.Merge.NameBy = strings.ToLower(strings.TrimSpace(c.Merge.NameBy))
	if c.Merge.NameBy == "" {
		c.Merge.NameBy = defaultNameBy
	}
	c.Merge.Retention = strings.ToLower(strings.TrimSpace(c.Merge.Retention))
	if c.Merge.Retention == "" {
		c.Merge.Retention = defaultRetention
	}
	if strings.TrimSpace(c.Merge.BinmergePath) == "" {
		c.Merge.BinmergePath = defaultBinmergePath
	}
	if c.Merge.BinmergePath, err = expandPath(c.Merge.BinmergePath); err != nil {
		return fmt.Errorf("merge.binmerge_path: %w", err)
	}
	c.Merge.PythonBinary = strings.TrimSpace(c.Merge.PythonBinary)
	if c.Merge.PythonBinary == "" {
		c.Merge.PythonBinary = defaultPythonBinary
	}
	if c.Merge.TimeoutSeconds == 0 {
		c.Merge.TimeoutSeconds = defaultTimeoutSeconds
	}
	c.Merge.DownloadURL = strings.TrimSpace(c.Merge.DownloadURL)
	if c.Merge.DownloadURL == "" {
		c.Merge.DownloadURL = defaultDownloadURL
	}
	if c.Merge.DownloadTimeout == 0 {
		c.Merge.DownloadTimeout = defaultDownloadTimeout
	}
	c.Merge.BackupDirName = strings.TrimSpace(c.Merge.BackupDirName)
	if c.Merge.BackupDirName == "" {
		c.Merge.BackupDirName = defaultBackupDirName
	}
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
