// ABOUTME: Standalone MCP server entry point with stdio transport
// ABOUTME: Initializes config, store, and query engine, then serves the article tools
package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/ThyagoSnt/articlestore/internal/config"
	"github.com/ThyagoSnt/articlestore/internal/llm"
	"github.com/ThyagoSnt/articlestore/internal/mcp"
	"github.com/ThyagoSnt/articlestore/internal/search"
	"github.com/ThyagoSnt/articlestore/internal/storage/sqlite"
)

func main() {
	// Load .env file if it exists (for API keys)
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found (this is okay for production): %v", err)
	}

	if os.Getenv("OPENAI_API_KEY") == "" {
		log.Println("Warning: OPENAI_API_KEY not set - search will not work")
	}

	cfg, err := config.LoadDefault()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	store, err := sqlite.NewStore(cfg.DatabasePath())
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer store.Close()

	client, err := llm.NewClient(llm.ClientConfig{
		APIKey: cfg.OpenAIKey(),
		Model:  cfg.EmbeddingModel,
	})
	if err != nil {
		log.Fatalf("Failed to initialize embedding client: %v", err)
	}

	engine := search.NewEngine(client, store, search.Config{
		Encoding:     cfg.TokenEncoding,
		ChunkSize:    cfg.ChunkSize,
		ChunkOverlap: cfg.ChunkOverlap,
	})

	server := mcpserver.NewMCPServer(
		"Article Store",
		"0.1.0",
	)
	mcp.RegisterTools(server, engine)

	log.Println("Article store MCP server starting on stdio...")
	if err := mcpserver.ServeStdio(server); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
