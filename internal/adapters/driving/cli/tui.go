package cli

import (
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/clipdex/clipdex-cli/internal/adapters/driving/tui"
	"github.com/clipdex/clipdex-cli/internal/core/domain"
	"github.com/clipdex/clipdex-cli/internal/logger"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive terminal user interface for clipdex.

Type a phrase and press Enter to search the transcript index; navigate
the results with the arrow keys.

Controls:
  ↑/k, ↓/j - Navigate results
  Enter    - Search
  /        - Edit the query
  Esc, q   - Quit`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	if searchService == nil {
		return errors.New("search service not configured")
	}

	// Panic recovery so a TUI crash still prints a usable stack trace
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	// Freshen the index in the background; the TUI is usable meanwhile.
	if indexService != nil && !indexService.Ready() {
		done := indexService.BuildAsync(cmd.Context(), false)
		go func() {
			if res := <-done; res.Err != nil && !errors.Is(res.Err, domain.ErrBuildInProgress) {
				logger.Error("background index build failed: %v", res.Err)
			}
		}()
	}

	return tui.Run(cmd.Context(), searchService)
}
