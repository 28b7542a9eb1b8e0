package cli

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/clipdex/clipdex-cli/internal/adapters/driven/store/file"
	"github.com/clipdex/clipdex-cli/internal/core/domain"
	"github.com/clipdex/clipdex-cli/internal/logger"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the transcript directory and keep the index current",
	Long: `Run an initial incremental index build, then watch the transcript
directory for new or changed record files and re-index as they appear.
Stops on Ctrl-C.`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, _ []string) error {
	if indexService == nil {
		return errors.New("index service not configured")
	}
	if transcriptStore == nil {
		return errors.New("transcript store not configured")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	stats, err := indexService.Build(ctx, false)
	if err != nil {
		return fmt.Errorf("initial index build failed: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Index ready: %d videos, %d segments. Watching %s\n",
		stats.VideosIndexed, stats.SegmentsIndexed, transcriptStore.Dir())

	watcher, err := file.NewWatcher(transcriptStore, func() {
		rebuild(ctx)
	})
	if err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}
	defer watcher.Close()

	runErr := make(chan error, 1)
	go func() { runErr <- watcher.Run(ctx) }()

	select {
	case <-ctx.Done():
	case err := <-runErr:
		if err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("watcher stopped: %w", err)
		}
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Stopping watch")
	return nil
}

func rebuild(ctx context.Context) {
	stats, err := indexService.Build(ctx, false)
	switch {
	case errors.Is(err, domain.ErrBuildInProgress):
		logger.Debug("rebuild skipped, build already running")
	case err != nil:
		logger.Error("rebuild failed: %v", err)
	case !stats.Skipped:
		logger.Info("re-indexed: %d videos, %d segments", stats.VideosIndexed, stats.SegmentsIndexed)
	}
}
