package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"mergehelper/internal/history"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history [run-id]",
		Short: "Show recorded runs, or per-title outcomes for one run",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if !cfg.History.Enabled {
				return fmt.Errorf("history is disabled in the configuration")
			}
			store, err := history.Open(cfg)
			if err != nil {
				return fmt.Errorf("open history store: %w", err)
			}
			defer store.Close()

			if len(args) == 1 {
				return printRunResults(cmd, store, args[0])
			}
			return printRuns(cmd, store, limit)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of runs to list")
	return cmd
}

func printRuns(cmd *cobra.Command, store *history.Store, limit int) error {
	runs, err := store.ListRuns(cmd.Context(), limit)
	if err != nil {
		return fmt.Errorf("list runs: %w", err)
	}
	out := cmd.OutOrStdout()
	if len(runs) == 0 {
		fmt.Fprintln(out, "No recorded runs")
		return nil
	}

	rows := make([][]string, 0, len(runs))
	for _, run := range runs {
		rows = append(rows, []string{
			run.ID,
			run.StartedAt.Local().Format("2006-01-02 15:04:05"),
			run.RootDir,
			yesNo(run.Purge),
			strconv.Itoa(run.Merged),
			strconv.Itoa(run.Skipped),
			strconv.Itoa(run.Failed),
		})
	}
	fmt.Fprintln(out, renderTable(
		[]string{"Run", "Started", "Root", "Purge", "Merged", "Skipped", "Failed"},
		rows, 4, 5, 6))
	return nil
}

func printRunResults(cmd *cobra.Command, store *history.Store, runID string) error {
	results, err := store.ListResults(cmd.Context(), runID)
	if err != nil {
		return fmt.Errorf("list run results: %w", err)
	}
	out := cmd.OutOrStdout()
	if len(results) == 0 {
		fmt.Fprintf(out, "No results recorded for run %s\n", runID)
		return nil
	}

	rows := make([][]string, 0, len(results))
	for _, result := range results {
		rows = append(rows, []string{
			strconv.Itoa(result.Position + 1),
			result.Title,
			result.Outcome,
			result.Detail,
			(time.Duration(result.DurationMS) * time.Millisecond).String(),
		})
	}
	fmt.Fprintln(out, renderTable([]string{"#", "Title", "Outcome", "Detail", "Duration"}, rows, 0, 4))
	return nil
}
