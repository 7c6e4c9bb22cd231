// ABOUTME: CLI command to list all indexed articles
// ABOUTME: Shows article ids, titles, categories, and chunk counts
package commands

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// NewListCmd creates the list command.
func NewListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List indexed articles",
		Long: `List all articles in the local index with their chunk counts.

Examples:
  articlestore list
  articlestore list --format json`,
		Args: cobra.NoArgs,
		RunE: runList,
	}

	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	articles, err := store.ListArticles()
	if err != nil {
		return fmt.Errorf("listing articles: %w", err)
	}

	if len(articles) == 0 {
		if !quiet {
			fmt.Fprintln(cmd.OutOrStdout(), "No articles indexed yet. Run 'articlestore ingest' first.")
		}
		return nil
	}

	if outputFormat == "json" {
		jsonData, err := json.MarshalIndent(articles, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "ID\tTITLE\tCATEGORY\tCHUNKS\n")
	fmt.Fprintf(w, "--\t-----\t--------\t------\n")
	for _, article := range articles {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\n",
			truncate(article.ID, 40),
			truncate(article.Title, 40),
			article.Category,
			article.ChunkCount)
	}
	w.Flush()

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "\n%d article(s) indexed\n", len(articles))
	}

	return nil
}
