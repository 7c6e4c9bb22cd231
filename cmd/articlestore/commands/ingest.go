// ABOUTME: CLI command to build the article index from a PDF directory tree
// ABOUTME: Wires extractor, tokenizer, embedder, and store into the build pipeline
package commands

import (
	"encoding/json"
	"fmt"
	"log"
	"text/tabwriter"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/ThyagoSnt/articlestore/internal/chunker"
	"github.com/ThyagoSnt/articlestore/internal/extract"
	"github.com/ThyagoSnt/articlestore/internal/index"
)

// NewIngestCmd creates the ingest command.
func NewIngestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ingest [pdf-root]",
		Short: "Index PDF articles into the local vector store",
		Long: `Index PDF articles into the local vector store.

Walks the PDF root as a two-level hierarchy: each subdirectory is a
category, each PDF inside it an article. Re-running ingest after adding
or changing files updates the index in place.

Examples:
  articlestore ingest
  articlestore ingest ./pdf_database
  articlestore ingest --format json ./papers`,
		Args: cobra.MaximumNArgs(1),
		RunE: runIngest,
	}

	return cmd
}

func runIngest(cmd *cobra.Command, args []string) error {
	// Load .env for API keys
	_ = godotenv.Load()

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	rootDir := cfg.PDFRoot
	if len(args) == 1 {
		rootDir = args[0]
	}

	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	var ocr extract.OCREngine
	if !cfg.DisableOCR {
		engine, err := extract.NewOCRmyPDF()
		if err != nil {
			if !quiet {
				log.Printf("OCR fallback disabled: %v", err)
			}
		} else {
			ocr = engine
		}
	}
	extractor := extract.New(ocr, cfg.OCRMaxChars)

	tokenizer, err := chunker.NewTiktoken(cfg.TokenEncoding)
	if err != nil {
		return fmt.Errorf("loading tokenizer: %w", err)
	}

	client, err := newEmbeddingClient(cfg)
	if err != nil {
		return err
	}

	builder, err := index.NewBuilder(extractor, tokenizer, client, store, index.Config{
		ChunkSize:    cfg.ChunkSize,
		ChunkOverlap: cfg.ChunkOverlap,
		Encoding:     cfg.TokenEncoding,
	})
	if err != nil {
		return err
	}

	result, err := builder.Build(cmd.Context(), rootDir)
	if err != nil {
		return fmt.Errorf("building index: %w", err)
	}

	if outputFormat == "json" {
		jsonData, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
		return nil
	}

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "Indexed %d article(s), %d chunk(s) in %s\n",
			result.ArticlesIndexed, result.ChunksIndexed, result.Duration.Round(10*time.Millisecond))
	}

	if len(result.Skipped) > 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "Skipped %d file(s):\n", len(result.Skipped))
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		for _, skip := range result.Skipped {
			fmt.Fprintf(w, "  %s\t%s\n", skip.File, skip.Reason)
		}
		w.Flush()
	}

	return nil
}
