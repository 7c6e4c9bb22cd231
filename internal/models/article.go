// ABOUTME: Article-level types: identifiers, search results, full content
// ABOUTME: Articles are logical units reassembled from their ordered chunks
package models

import (
	"fmt"
	"path/filepath"
	"strings"
)

// ArticleID derives the logical article identifier from a category folder
// name and a PDF file name, e.g. ("tech", "tech_1.pdf") -> "tech_tech_1".
func ArticleID(category, fileName string) string {
	return category + "_" + FileStem(fileName)
}

// ChunkID derives the deterministic id of a chunk within an article.
// Deterministic ids make a rebuild an in-place upsert instead of a
// duplicate insert.
func ChunkID(articleID string, index int) string {
	return fmt.Sprintf("%s_%d", articleID, index)
}

// FileStem returns the file name without its extension.
func FileStem(fileName string) string {
	return strings.TrimSuffix(fileName, filepath.Ext(fileName))
}

// TitleFromFile derives a display title from a PDF file name by dropping
// the extension and replacing underscores with spaces.
func TitleFromFile(fileName string) string {
	return strings.ReplaceAll(FileStem(fileName), "_", " ")
}

// SearchResult is one aggregated article in a similarity search response.
// The category is serialised as "area", the wire name the agent pipeline
// expects.
type SearchResult struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	Category string  `json:"area"`
	Score    float64 `json:"score"`
}

// ArticleContent is the full reconstructed text of one article.
type ArticleContent struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Category string `json:"area"`
	Content  string `json:"content"`
}

// ArticleInfo summarises one indexed article for listings.
type ArticleInfo struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Category   string `json:"area"`
	ChunkCount int    `json:"chunk_count"`
}
