package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"mergehelper/internal/catalog"
)

func newScanCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "scan",
		Short: "Classify titles under the game root without changing anything",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			nameBy, err := catalog.ParseNameBy(cfg.Merge.NameBy)
			if err != nil {
				return err
			}

			entries, err := os.ReadDir(cfg.Paths.RootDir)
			if err != nil {
				return fmt.Errorf("list root directory: %w", err)
			}

			var rows [][]string
			mergeable := 0
			for _, entry := range entries {
				if !entry.IsDir() {
					continue
				}
				c := catalog.Classify(filepath.Join(cfg.Paths.RootDir, entry.Name()), nameBy)
				if c.Mergeable() {
					mergeable++
				}
				rows = append(rows, []string{
					entry.Name(),
					c.Kind.String(),
					strconv.Itoa(c.TrackCount),
					strconv.Itoa(c.CueCount),
					c.Name,
				})
			}

			out := cmd.OutOrStdout()
			if len(rows) == 0 {
				fmt.Fprintf(out, "No title directories found under %s\n", cfg.Paths.RootDir)
				return nil
			}
			fmt.Fprintln(out, renderTable([]string{"Title", "Status", "Tracks", "Cues", "Merged name"}, rows, 2, 3))
			fmt.Fprintf(out, "%d of %d titles would be merged\n", mergeable, len(rows))
			return nil
		},
	}
}
