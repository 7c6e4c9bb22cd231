// ABOUTME: MCP tool handler implementations for the article store server
// ABOUTME: Validates arguments, calls the query engine, and serializes results
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ThyagoSnt/articlestore/internal/models"
)

// MaxTopK caps the result count a client may request.
const MaxTopK = 50

// Searcher is the query surface the handlers need.
type Searcher interface {
	SearchArticles(ctx context.Context, query string, topK int) ([]models.SearchResult, error)
	GetArticleContent(ctx context.Context, articleID string) (*models.ArticleContent, error)
}

// Handlers contains the handler functions for the MCP tools.
type Handlers struct {
	searcher Searcher
}

// SearchArticles handles the search_articles tool.
func (h *Handlers) SearchArticles(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("query argument is required and must be a string"), nil
	}

	topK := request.GetInt("top_k", 5)
	if topK < 1 || topK > MaxTopK {
		return mcp.NewToolResultError(fmt.Sprintf("top_k must be between 1 and %d", MaxTopK)), nil
	}

	results, err := h.searcher.SearchArticles(ctx, query, topK)
	if err != nil {
		if errors.Is(err, models.ErrInvalidArgument) {
			return mcp.NewToolResultError(fmt.Sprintf("invalid query: %v", err)), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("search failed: %v", err)), nil
	}
	if results == nil {
		results = []models.SearchResult{}
	}

	response := map[string]interface{}{
		"results": results,
	}

	responseJSON, err := json.Marshal(response)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}

	return mcp.NewToolResultText(string(responseJSON)), nil
}

// GetArticleContent handles the get_article_content tool.
func (h *Handlers) GetArticleContent(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	articleID, err := request.RequireString("article_id")
	if err != nil {
		return mcp.NewToolResultError("article_id argument is required and must be a string"), nil
	}

	content, err := h.searcher.GetArticleContent(ctx, articleID)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrNotFound):
			return mcp.NewToolResultError(fmt.Sprintf("article not found: %s", articleID)), nil
		case errors.Is(err, models.ErrInvalidArgument):
			return mcp.NewToolResultError(fmt.Sprintf("invalid article id: %v", err)), nil
		default:
			return mcp.NewToolResultError(fmt.Sprintf("content retrieval failed: %v", err)), nil
		}
	}

	responseJSON, err := json.Marshal(content)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}

	return mcp.NewToolResultText(string(responseJSON)), nil
}
