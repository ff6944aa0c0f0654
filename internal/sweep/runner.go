package sweep

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"mergehelper/internal/backup"
	"mergehelper/internal/catalog"
	"mergehelper/internal/config"
	"mergehelper/internal/logging"
	"mergehelper/internal/services"
	"mergehelper/internal/services/binmerge"
)

// Runner executes one sweep over the configured root directory.
type Runner struct {
	root    string
	nameBy  catalog.NameBy
	purge   bool
	merger  binmerge.Merger
	backups *backup.Coordinator
	logger  *slog.Logger
}

// NewRunner builds a Runner. The retention decision must already be resolved;
// the sweep never prompts.
func NewRunner(cfg *config.Config, purge bool, merger binmerge.Merger, logger *slog.Logger) (*Runner, error) {
	if cfg == nil {
		return nil, errors.New("config is required")
	}
	if merger == nil {
		return nil, errors.New("merger is required")
	}
	nameBy, err := catalog.ParseNameBy(cfg.Merge.NameBy)
	if err != nil {
		return nil, err
	}
	return &Runner{
		root:    cfg.Paths.RootDir,
		nameBy:  nameBy,
		purge:   purge,
		merger:  merger,
		backups: backup.NewCoordinator(cfg.Merge.BackupDirName, logger),
		logger:  logging.NewComponentLogger(logger, "sweep"),
	}, nil
}

// Run processes every immediate subdirectory of the root, one title at a
// time. Per-title failures become outcomes; only an unreadable root aborts.
func (r *Runner) Run(ctx context.Context) (*Report, error) {
	report := &Report{
		RunID:     uuid.NewString(),
		RootDir:   r.root,
		Purge:     r.purge,
		StartedAt: time.Now(),
	}
	ctx = services.WithRunID(ctx, report.RunID)

	entries, err := os.ReadDir(r.root)
	if err != nil {
		return nil, fmt.Errorf("list root directory: %w", err)
	}

	r.logger.Info("sweep started",
		slog.String(logging.FieldRunID, report.RunID),
		slog.String("root", r.root),
		slog.Bool("purge", r.purge))

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		report.Results = append(report.Results, r.processTitle(ctx, filepath.Join(r.root, entry.Name())))
	}

	report.FinishedAt = time.Now()
	merged, skipped, failed := report.Counts()
	r.logger.Info("sweep finished",
		slog.String(logging.FieldRunID, report.RunID),
		slog.Int("merged", merged),
		slog.Int("skipped", skipped),
		slog.Int("failed", failed),
		slog.Duration("elapsed", report.Duration()))
	return report, nil
}

func (r *Runner) processTitle(ctx context.Context, titleDir string) TitleResult {
	started := time.Now()
	classification := catalog.Classify(titleDir, r.nameBy)

	result := TitleResult{
		Title: classification.Name,
		Dir:   titleDir,
	}
	ctx = services.WithTitle(ctx, classification.Name)
	logger := logging.WithContext(ctx, r.logger)

	switch classification.Kind {
	case catalog.KindNoTracks:
		result.Outcome = OutcomeNoTracks
		logger.Info("no tracks found, skipping")
	case catalog.KindSingleTrack:
		result.Outcome = OutcomeSingleTrackSkip
		logger.Info("single track, no merge needed")
	case catalog.KindAmbiguousCue:
		result.Outcome = OutcomeAmbiguousCueSkip
		result.Detail = fmt.Sprintf("%d tracks, %d cue sheets", classification.TrackCount, classification.CueCount)
		logger.Warn("cue sheet count makes merge target undeterminable",
			slog.Int("tracks", classification.TrackCount),
			slog.Int("cues", classification.CueCount))
	case catalog.KindMergeable:
		result = r.mergeTitle(ctx, logger, titleDir, classification)
	}

	result.Duration = time.Since(started)
	return result
}

func (r *Runner) mergeTitle(ctx context.Context, logger *slog.Logger, titleDir string, classification catalog.Classification) TitleResult {
	result := TitleResult{
		Title: classification.Name,
		Dir:   titleDir,
	}

	logger.Info("attempting merge",
		slog.Int("tracks", classification.TrackCount),
		slog.String("cue", classification.CueFile))

	handle, err := r.backups.Begin(titleDir)
	if err != nil {
		if errors.Is(err, backup.ErrBackupExists) {
			result.Outcome = OutcomeBackupSkip
			result.Detail = err.Error()
			logger.Warn("populated backup directory from an earlier run, skipping")
			return result
		}
		result.Outcome = OutcomeBackupFailed
		result.Detail = err.Error()
		logger.Error("backup failed, merge not attempted", logging.Error(err))
		return result
	}

	mergeCtx := services.WithStep(ctx, "merge")
	lines, mergeErr := r.merger.Merge(mergeCtx, handle.Path(classification.CueFile), classification.Name, titleDir)
	result.MergeOutput = lines

	if mergeErr != nil {
		logger.Error("merge tool failed, rolling back",
			logging.Error(mergeErr),
			slog.String("output", strings.Join(lines, "\n")))
		if restoreErr := handle.Restore(); restoreErr != nil {
			result.Outcome = OutcomeRollbackFailed
			result.Detail = fmt.Sprintf("merge: %v; restore: %v", mergeErr, restoreErr)
			logger.Error("ROLLBACK FAILED: originals may be stranded in backup directory",
				slog.String("backup_dir", handle.Dir()),
				logging.Error(restoreErr))
			return result
		}
		result.Outcome = OutcomeMergeFailedRolledBack
		result.Detail = mergeErr.Error()
		logger.Info("original layout restored")
		return result
	}

	if err := handle.Commit(r.purge); err != nil {
		// Merge output is in place; only the backup cleanup failed.
		result.Outcome = OutcomeMergeSucceededRetained
		result.Detail = fmt.Sprintf("purge failed: %v", err)
		logger.Warn("merge succeeded but backup purge failed", logging.Error(err))
		return result
	}

	if r.purge {
		result.Outcome = OutcomeMergeSucceededPurged
		logger.Info("merge complete, originals removed")
	} else {
		result.Outcome = OutcomeMergeSucceededRetained
		logger.Info("merge complete, originals archived", slog.String("backup_dir", handle.Dir()))
	}
	return result
}
