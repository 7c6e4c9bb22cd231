// ABOUTME: CLI command to search indexed articles by semantic similarity
// ABOUTME: Prints ranked articles as a table or JSON
package commands

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	searchTopK int
)

// NewSearchCmd creates the search command.
func NewSearchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search indexed articles",
		Long: `Search indexed articles by semantic similarity.

The query is embedded with the same model the index was built with and
compared against every stored chunk; articles are ranked by their
best-matching passage.

Examples:
  articlestore search "transformer architectures"
  articlestore search --top-k 10 "protein folding"
  articlestore search --format json "reinforcement learning"`,
		Args: cobra.ExactArgs(1),
		RunE: runSearch,
	}

	cmd.Flags().IntVar(&searchTopK, "top-k", 5, "Maximum articles to return")

	return cmd
}

func runSearch(cmd *cobra.Command, args []string) error {
	// Load .env for API keys
	_ = godotenv.Load()

	if err := validatePositiveInt(searchTopK, "top-k"); err != nil {
		return err
	}

	query := args[0]

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	engine, err := newSearchEngine(cfg, store)
	if err != nil {
		return err
	}

	results, err := engine.SearchArticles(cmd.Context(), query, searchTopK)
	if err != nil {
		return fmt.Errorf("searching articles: %w", err)
	}

	if len(results) == 0 {
		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "No articles found for query: %s\n", query)
		}
		return nil
	}

	if outputFormat == "json" {
		jsonData, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "SCORE\tID\tTITLE\tCATEGORY\n")
	fmt.Fprintf(w, "-----\t--\t-----\t--------\n")
	for _, result := range results {
		fmt.Fprintf(w, "%.3f\t%s\t%s\t%s\n",
			result.Score,
			truncate(result.ID, 40),
			truncate(result.Title, 40),
			result.Category)
	}
	w.Flush()

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "\nFound %d article(s)\n", len(results))
	}

	return nil
}
