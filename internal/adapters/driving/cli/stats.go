package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var statsJSONFlag bool

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show index and cache statistics",
	RunE:  runStats,
}

func init() {
	statsCmd.Flags().BoolVar(&statsJSONFlag, "json", false, "output as JSON")
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, _ []string) error {
	if searchService == nil {
		return errors.New("search service not configured")
	}

	stats, err := searchService.Stats(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to read stats: %w", err)
	}

	out := cmd.OutOrStdout()
	if statsJSONFlag {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(stats)
	}

	fmt.Fprintf(out, "Videos indexed:   %d\n", stats.TotalVideos)
	fmt.Fprintf(out, "Segments indexed: %d\n", stats.TotalSegments)
	fmt.Fprintf(out, "Cached queries:   %d\n", stats.CacheSize)
	return nil
}
