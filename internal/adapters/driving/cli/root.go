// Package cli wires the cobra command tree for clipdex. Services are
// injected as package-level variables by the entrypoint before Execute.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/clipdex/clipdex-cli/internal/adapters/driven/store/file"
	"github.com/clipdex/clipdex-cli/internal/core/ports/driven"
	"github.com/clipdex/clipdex-cli/internal/core/ports/driving"
	"github.com/clipdex/clipdex-cli/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// Injected services. Commands check for nil and fail with a clear message
// so partial wiring (as in tests) stays usable.
var (
	searchService   driving.SearchService
	indexService    driving.IndexService
	configStore     driven.ConfigStore
	transcriptStore *file.RecordStore
)

var verboseFlag bool

var rootCmd = &cobra.Command{
	Use:   "clipdex",
	Short: "Search inside video transcripts",
	Long: `clipdex indexes cached video transcripts into an embedded full-text
index and finds timestamped snippets matching a phrase, so a player can
seek straight to the moment a thing was said.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verboseFlag)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable verbose logging")
}

// Services bundles everything the command tree needs.
type Services struct {
	Search          driving.SearchService
	Index           driving.IndexService
	Config          driven.ConfigStore
	TranscriptStore *file.RecordStore
}

// SetServices injects the service implementations used by the commands.
func SetServices(s Services) {
	searchService = s.Search
	indexService = s.Index
	configStore = s.Config
	transcriptStore = s.TranscriptStore
}

// SetVersion overrides the version string printed by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
