package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/clipdex/clipdex-cli/internal/core/domain"
)

var indexForce bool

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Build the transcript index",
	Long: `Build the transcript index from the cached record files. By default
only records not yet indexed are added; --force drops the index and
rebuilds it from scratch.`,
	RunE: runIndex,
}

func init() {
	indexCmd.Flags().BoolVarP(&indexForce, "force", "f", false, "drop and rebuild the whole index")
	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, _ []string) error {
	if indexService == nil {
		return errors.New("index service not configured")
	}

	stats, err := indexService.Build(cmd.Context(), indexForce)
	if err != nil {
		if errors.Is(err, domain.ErrBuildInProgress) {
			return errors.New("an index build is already running")
		}
		return fmt.Errorf("index build failed: %w", err)
	}

	out := cmd.OutOrStdout()
	if stats.Skipped {
		fmt.Fprintf(out, "Index up to date: %d videos, %d segments\n",
			stats.VideosIndexed, stats.SegmentsIndexed)
		return nil
	}

	fmt.Fprintf(out, "Indexed %d videos (%d segments) in %dms\n",
		stats.VideosIndexed, stats.SegmentsIndexed, stats.ElapsedMS)
	if stats.EmptyRecords > 0 {
		fmt.Fprintf(out, "  %d empty record(s)\n", stats.EmptyRecords)
	}
	if stats.FailedRecords > 0 {
		fmt.Fprintf(out, "  %d record(s) failed to load\n", stats.FailedRecords)
	}
	return nil
}
