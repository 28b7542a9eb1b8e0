package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/clipdex/clipdex-cli/internal/core/domain"
)

var (
	searchLimit    int
	searchJSONFlag bool
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search the transcript index",
	Long: `Search the transcript index for a phrase and print the matching
segments with their video and timestamp. Exact matches (all words
present) rank above partial matches.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 10, "maximum number of results")
	searchCmd.Flags().BoolVar(&searchJSONFlag, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	if searchService == nil {
		return errors.New("search service not configured")
	}

	query := strings.Join(args, " ")
	results, err := searchService.Search(cmd.Context(), query, searchLimit)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSONFlag {
		return outputSearchJSON(cmd, results)
	}
	return outputSearchText(cmd, query, results)
}

func outputSearchJSON(cmd *cobra.Command, results []domain.Result) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(results)
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	metaStyle  = lipgloss.NewStyle().Faint(true)
	markStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	markRe     = regexp.MustCompile(regexp.QuoteMeta(domain.HighlightOpen) + `(.*?)` + regexp.QuoteMeta(domain.HighlightClose))
)

func outputSearchText(cmd *cobra.Command, query string, results []domain.Result) error {
	out := cmd.OutOrStdout()

	if len(results) == 0 {
		fmt.Fprintf(out, "No results for %q\n", query)
		return nil
	}

	for i, r := range results {
		fmt.Fprintf(out, "%d. %s %s\n", i+1,
			titleStyle.Render(r.VideoTitle),
			metaStyle.Render(fmt.Sprintf("(%s, %s)", formatTimestamp(r.Start), r.MatchInfo)))
		text := r.ContextualText
		if text == "" {
			text = r.HighlightedText
		}
		fmt.Fprintf(out, "   %s\n", renderMarks(text))
	}
	fmt.Fprintf(out, "\n%d result(s)\n", len(results))
	return nil
}

// renderMarks replaces highlight markers with terminal styling.
func renderMarks(s string) string {
	return markRe.ReplaceAllStringFunc(s, func(m string) string {
		inner := strings.TrimSuffix(strings.TrimPrefix(m, domain.HighlightOpen), domain.HighlightClose)
		return markStyle.Render(inner)
	})
}

func formatTimestamp(seconds int) string {
	if seconds >= 3600 {
		return fmt.Sprintf("%d:%02d:%02d", seconds/3600, (seconds%3600)/60, seconds%60)
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}
