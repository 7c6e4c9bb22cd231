// ABOUTME: CLI command to print the full text of one indexed article
// ABOUTME: Looks an article up by id and reassembles its chunks
package commands

import (
	"encoding/json"
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// NewGetCmd creates the get command.
func NewGetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get <article-id>",
		Short: "Print the full text of an article",
		Long: `Print the full text of an indexed article.

Article ids are printed by the search and list commands; they have the
form <category>_<file-stem>.

Examples:
  articlestore get tech_attention_is_all_you_need
  articlestore get --format json med_alphafold`,
		Args: cobra.ExactArgs(1),
		RunE: runGet,
	}

	return cmd
}

func runGet(cmd *cobra.Command, args []string) error {
	// Load .env for API keys
	_ = godotenv.Load()

	articleID := args[0]

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

	content, err := engine.GetArticleContent(cmd.Context(), articleID)
	if err != nil {
		return fmt.Errorf("fetching article: %w", err)
	}

	if outputFormat == "json" {
		jsonData, err := json.MarshalIndent(content, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
		return nil
	}

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n\n", content.Title, content.Category)
	}
	fmt.Fprintln(cmd.OutOrStdout(), content.Content)

	return nil
}
