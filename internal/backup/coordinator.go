package backup

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"mergehelper/internal/catalog"
	"mergehelper/internal/fileutil"
	"mergehelper/internal/logging"
)

// ErrBackupExists signals that a previous run left a populated backup
// directory behind; merging again would overwrite archived originals.
var ErrBackupExists = errors.New("backup directory already holds files")

// ErrFinalized signals that Restore or Commit was already called on a handle.
var ErrFinalized = errors.New("backup handle already finalized")

// Coordinator creates and resolves per-title backups.
type Coordinator struct {
	dirName string
	logger  *slog.Logger
}

// NewCoordinator builds a Coordinator using the configured backup directory
// name (canonically "orig").
func NewCoordinator(dirName string, logger *slog.Logger) *Coordinator {
	if dirName == "" {
		dirName = "orig"
	}
	return &Coordinator{
		dirName: dirName,
		logger:  logging.NewComponentLogger(logger, "backup"),
	}
}

// Handle tracks one title's backup between Begin and Restore/Commit.
type Handle struct {
	titleDir  string
	backupDir string
	logger    *slog.Logger
	finalized bool
}

// Dir returns the backup directory path.
func (h *Handle) Dir() string {
	return h.backupDir
}

// Path returns the backup location of a file that was moved out of the title
// directory.
func (h *Handle) Path(name string) string {
	return filepath.Join(h.backupDir, name)
}

// Begin moves every top-level BIN/CUE file out of titleDir into the backup
// directory. Either all files end up in the backup directory or the original
// layout is restored and an error returned.
func (c *Coordinator) Begin(titleDir string) (*Handle, error) {
	backupDir := filepath.Join(titleDir, c.dirName)
	if populated, err := dirHoldsFiles(backupDir); err != nil {
		return nil, fmt.Errorf("inspect backup directory: %w", err)
	} else if populated {
		return nil, ErrBackupExists
	}

	staging := filepath.Join(titleDir, "."+c.dirName+".staging")
	if populated, err := dirHoldsFiles(staging); err != nil {
		return nil, fmt.Errorf("inspect staging directory: %w", err)
	} else if populated {
		// A populated staging directory means a previous run died mid-backup;
		// leave it for the operator rather than mixing two generations.
		return nil, fmt.Errorf("stale staging directory %s holds files", staging)
	}
	if err := os.RemoveAll(staging); err != nil {
		return nil, fmt.Errorf("clear staging directory: %w", err)
	}
	if err := os.Mkdir(staging, 0o755); err != nil {
		return nil, fmt.Errorf("create staging directory: %w", err)
	}

	entries, err := os.ReadDir(titleDir)
	if err != nil {
		_ = os.Remove(staging)
		return nil, fmt.Errorf("list title directory: %w", err)
	}

	var staged []string
	for _, entry := range entries {
		if entry.IsDir() || !catalog.IsMergeArtifact(entry.Name()) {
			continue
		}
		name := entry.Name()
		if err := fileutil.MoveFile(filepath.Join(titleDir, name), filepath.Join(staging, name)); err != nil {
			c.unstage(titleDir, staging, staged)
			return nil, fmt.Errorf("stage %s: %w", name, err)
		}
		staged = append(staged, name)
	}

	// Remove a pre-existing empty backup directory so the rename can land.
	if err := os.Remove(backupDir); err != nil && !errors.Is(err, os.ErrNotExist) {
		c.unstage(titleDir, staging, staged)
		return nil, fmt.Errorf("clear empty backup directory: %w", err)
	}
	if err := os.Rename(staging, backupDir); err != nil {
		c.unstage(titleDir, staging, staged)
		return nil, fmt.Errorf("publish backup directory: %w", err)
	}

	c.logger.Debug("originals backed up",
		slog.String("title_dir", titleDir),
		slog.Int("files", len(staged)))

	return &Handle{
		titleDir:  titleDir,
		backupDir: backupDir,
		logger:    c.logger,
	}, nil
}

// unstage moves already-staged files back and drops the staging directory.
// Best effort: Begin already failed, this just minimizes the damage.
func (c *Coordinator) unstage(titleDir, staging string, staged []string) {
	for _, name := range staged {
		if err := fileutil.MoveFile(filepath.Join(staging, name), filepath.Join(titleDir, name)); err != nil {
			c.logger.Error("unstage failed; file stranded in staging directory",
				slog.String("file", name),
				slog.String("staging_dir", staging),
				logging.Error(err))
		}
	}
	_ = os.Remove(staging)
}

// Restore deletes presumed-partial merge output from the title directory,
// moves every backed-up file back, and removes the backup directory.
func (h *Handle) Restore() error {
	if h.finalized {
		return ErrFinalized
	}

	entries, err := os.ReadDir(h.titleDir)
	if err != nil {
		return fmt.Errorf("list title directory: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() || !catalog.IsMergeArtifact(entry.Name()) {
			continue
		}
		if err := os.Remove(filepath.Join(h.titleDir, entry.Name())); err != nil {
			return fmt.Errorf("remove partial output %s: %w", entry.Name(), err)
		}
	}

	backed, err := os.ReadDir(h.backupDir)
	if err != nil {
		return fmt.Errorf("list backup directory: %w", err)
	}
	for _, entry := range backed {
		name := entry.Name()
		if err := fileutil.MoveFile(h.Path(name), filepath.Join(h.titleDir, name)); err != nil {
			return fmt.Errorf("restore %s: %w", name, err)
		}
	}

	if err := os.Remove(h.backupDir); err != nil {
		return fmt.Errorf("remove backup directory: %w", err)
	}

	h.finalized = true
	h.logger.Debug("original layout restored", slog.String("title_dir", h.titleDir))
	return nil
}

// Commit finalizes a successful merge. With purge the backup directory and
// its contents are deleted; otherwise it stays as the archive of originals.
func (h *Handle) Commit(purge bool) error {
	if h.finalized {
		return ErrFinalized
	}
	if purge {
		if err := os.RemoveAll(h.backupDir); err != nil {
			return fmt.Errorf("purge backup directory: %w", err)
		}
	}
	h.finalized = true
	return nil
}

func dirHoldsFiles(dir string) (bool, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	return len(entries) > 0, nil
}
