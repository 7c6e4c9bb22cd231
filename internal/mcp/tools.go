// ABOUTME: MCP tool definitions and registration for the article store server
// ABOUTME: Defines JSON schemas for the search and retrieval tools
package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

// RegisterTools registers the article tools with the server.
func RegisterTools(server *mcpserver.MCPServer, searcher Searcher) *Handlers {
	handlers := &Handlers{searcher: searcher}

	server.AddTool(mcp.Tool{
		Name:        "search_articles",
		Description: "Search the indexed article collection by semantic similarity. Returns the most relevant articles with their ids; pass an id to get_article_content to read the full text.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"query": map[string]interface{}{
					"type":        "string",
					"description": "Natural-language search query",
				},
				"top_k": map[string]interface{}{
					"type":        "number",
					"description": "Maximum number of articles to return (1-50, default: 5)",
					"default":     5,
				},
			},
			Required: []string{"query"},
		},
	}, handlers.SearchArticles)

	server.AddTool(mcp.Tool{
		Name:        "get_article_content",
		Description: "Get the full text of one indexed article by id, as returned by search_articles.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"article_id": map[string]interface{}{
					"type":        "string",
					"description": "Article id from a previous search_articles result",
				},
			},
			Required: []string{"article_id"},
		},
	}, handlers.GetArticleContent)

	return handlers
}
