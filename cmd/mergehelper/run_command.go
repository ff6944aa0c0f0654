package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"mergehelper/internal/config"
	"mergehelper/internal/history"
	"mergehelper/internal/logging"
	"mergehelper/internal/preflight"
	"mergehelper/internal/retention"
	"mergehelper/internal/services/binmerge"
	"mergehelper/internal/sweep"
)

func newRunCommand(ctx *commandContext) *cobra.Command {
	var purgeFlag bool
	var keepFlag bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Merge every multi-track title under the game root",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := logging.NewFromConfig(cfg)
			if err != nil {
				return fmt.Errorf("initialize logging: %w", err)
			}

			out := cmd.OutOrStdout()
			checks := preflight.RunAll(cmd.Context(), cfg)
			printPreflight(out, checks)
			if !preflight.Passed(checks) {
				return errors.New("preflight checks failed")
			}

			lock := flock.New(cfg.LockFilePath())
			locked, err := lock.TryLock()
			if err != nil {
				return fmt.Errorf("acquire run lock: %w", err)
			}
			if !locked {
				return fmt.Errorf("another mergehelper run is already active (lock %s)", cfg.LockFilePath())
			}
			defer func() {
				_ = lock.Unlock()
			}()

			purge, err := resolveRetention(cmd, cfg, purgeFlag, keepFlag)
			if errors.Is(err, retention.ErrAborted) {
				fmt.Fprintln(out, "Aborted before any titles were touched.")
				return nil
			}
			if err != nil {
				return err
			}

			merger, err := binmerge.New(cfg.Merge.PythonBinary, cfg.Merge.BinmergePath, cfg.Merge.TimeoutSeconds)
			if err != nil {
				return err
			}
			runner, err := sweep.NewRunner(cfg, purge, merger, logger)
			if err != nil {
				return err
			}

			report, err := runner.Run(cmd.Context())
			if err != nil {
				return err
			}

			printSummary(out, cfg, report)
			recordHistory(cmd.Context(), cfg, logger, report)
			return nil
		},
	}

	cmd.Flags().BoolVar(&purgeFlag, "purge", false, "Delete originals after successful merges without prompting")
	cmd.Flags().BoolVar(&keepFlag, "keep", false, "Keep originals regardless of the configured retention mode")
	return cmd
}

// resolveRetention turns flags, config, and (when interactive) a one-time
// prompt into the purge decision for the whole sweep.
func resolveRetention(cmd *cobra.Command, cfg *config.Config, purgeFlag, keepFlag bool) (bool, error) {
	if purgeFlag && keepFlag {
		return false, errors.New("--purge and --keep are mutually exclusive")
	}
	if purgeFlag {
		return true, nil
	}
	if keepFlag {
		return false, nil
	}

	mode, err := retention.ParseMode(cfg.Merge.Retention)
	if err != nil {
		return false, err
	}
	if mode == retention.ModePrompt && !stdinIsTerminal() {
		fmt.Fprintln(cmd.OutOrStdout(), "stdin is not a terminal; originals will be kept")
		mode = retention.ModeKeep
	}

	reader := bufio.NewReader(cmd.InOrStdin())
	return retention.Resolve(mode, func(question string) (string, error) {
		fmt.Fprint(cmd.OutOrStdout(), question)
		answer, err := reader.ReadString('\n')
		if err != nil && answer == "" {
			return "", err
		}
		return answer, nil
	})
}

func stdinIsTerminal() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func printPreflight(out io.Writer, checks []preflight.Result) {
	fmt.Fprintln(out, "Preflight:")
	for _, check := range checks {
		marker := "ok"
		if !check.Passed {
			marker = "FAIL"
		}
		if check.Detail != "" {
			fmt.Fprintf(out, "  [%s] %s: %s\n", marker, check.Name, check.Detail)
		} else {
			fmt.Fprintf(out, "  [%s] %s\n", marker, check.Name)
		}
	}
}

func printSummary(out io.Writer, cfg *config.Config, report *sweep.Report) {
	if len(report.Results) == 0 {
		fmt.Fprintf(out, "No title directories found under %s\n", report.RootDir)
		return
	}

	rows := make([][]string, 0, len(report.Results))
	for _, result := range report.Results {
		rows = append(rows, []string{result.Title, string(result.Outcome), result.Detail})
	}
	fmt.Fprintln(out, renderTable([]string{"Title", "Outcome", "Detail"}, rows))

	merged, skipped, failed := report.Counts()
	fmt.Fprintf(out, "Merged %d, skipped %d, failed %d in %s\n",
		merged, skipped, failed, report.Duration().Round(time.Millisecond))

	for _, stranded := range report.RollbackFailures() {
		fmt.Fprintf(out, "WARNING: rollback failed for %s; check %s before touching the title\n",
			stranded.Title, filepath.Join(stranded.Dir, cfg.Merge.BackupDirName))
	}
}

// recordHistory persists the run best-effort; a history failure never fails
// a completed sweep.
func recordHistory(ctx context.Context, cfg *config.Config, logger *slog.Logger, report *sweep.Report) {
	if !cfg.History.Enabled {
		return
	}
	store, err := history.Open(cfg)
	if err != nil {
		logger.Warn("history store unavailable", logging.Error(err))
		return
	}
	defer store.Close()

	merged, skipped, failed := report.Counts()
	run := history.Run{
		ID:          report.RunID,
		RootDir:     report.RootDir,
		Purge:       report.Purge,
		StartedAt:   report.StartedAt,
		FinishedAt:  report.FinishedAt,
		TitlesTotal: len(report.Results),
		Merged:      merged,
		Skipped:     skipped,
		Failed:      failed,
	}
	results := make([]history.TitleResult, 0, len(report.Results))
	for i, result := range report.Results {
		results = append(results, history.TitleResult{
			RunID:      report.RunID,
			Position:   i,
			Title:      result.Title,
			Outcome:    string(result.Outcome),
			Detail:     result.Detail,
			DurationMS: result.Duration.Milliseconds(),
		})
	}
	if err := store.RecordRun(ctx, run, results); err != nil {
		logger.Warn("record run history", logging.Error(err))
	}
}
