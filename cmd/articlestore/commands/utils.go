// ABOUTME: Shared utility and wiring functions for CLI commands
// ABOUTME: Config loading, store opening, and engine construction used by several commands
package commands

import (
	"fmt"

	"github.com/ThyagoSnt/articlestore/internal/config"
	"github.com/ThyagoSnt/articlestore/internal/llm"
	"github.com/ThyagoSnt/articlestore/internal/search"
	"github.com/ThyagoSnt/articlestore/internal/storage/sqlite"
)

// loadConfig resolves the configuration, honoring the --config flag.
func loadConfig() (*config.Config, error) {
	if configPath != "" {
		return config.Load(configPath)
	}
	return config.LoadDefault()
}

// openStore opens the sqlite store the configuration points at.
func openStore(cfg *config.Config) (*sqlite.Store, error) {
	store, err := sqlite.NewStore(cfg.DatabasePath())
	if err != nil {
		return nil, fmt.Errorf("opening store at %s: %w", cfg.DatabasePath(), err)
	}
	return store, nil
}

// newEmbeddingClient builds the OpenAI client from the configuration.
func newEmbeddingClient(cfg *config.Config) (*llm.Client, error) {
	return llm.NewClient(llm.ClientConfig{
		APIKey: cfg.OpenAIKey(),
		Model:  cfg.EmbeddingModel,
	})
}

// newSearchEngine wires the query engine over an open store.
func newSearchEngine(cfg *config.Config, store *sqlite.Store) (*search.Engine, error) {
	client, err := newEmbeddingClient(cfg)
	if err != nil {
		return nil, err
	}
	engine := search.NewEngine(client, store, search.Config{
		Encoding:     cfg.TokenEncoding,
		ChunkSize:    cfg.ChunkSize,
		ChunkOverlap: cfg.ChunkOverlap,
	})
	return engine, nil
}

// truncate shortens a string to maxLen runes, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}

// validatePositiveInt returns an error if n is not positive.
func validatePositiveInt(n int, name string) error {
	if n <= 0 {
		return fmt.Errorf("%s must be positive, got %d", name, n)
	}
	return nil
}
