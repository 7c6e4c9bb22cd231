// ABOUTME: Chunk record types stored in the vector index
// ABOUTME: Metadata is a fixed-field struct validated at write time
package models

import "fmt"

// ChunkMetadata describes where a chunk came from within the article
// taxonomy. Every field is required except Title, which falls back to the
// source file name at read time.
type ChunkMetadata struct {
	Category   string `json:"category"`
	SourceFile string `json:"source_file"`
	ChunkIndex int    `json:"chunk_index"`
	ArticleID  string `json:"article_id"`
	Title      string `json:"title"`
}

// Validate checks that the metadata identifies a chunk unambiguously.
func (m ChunkMetadata) Validate() error {
	if m.ArticleID == "" {
		return fmt.Errorf("%w: chunk metadata missing article_id", ErrInvalidArgument)
	}
	if m.Category == "" {
		return fmt.Errorf("%w: chunk metadata missing category", ErrInvalidArgument)
	}
	if m.SourceFile == "" {
		return fmt.Errorf("%w: chunk metadata missing source_file", ErrInvalidArgument)
	}
	if m.ChunkIndex < 0 {
		return fmt.Errorf("%w: chunk metadata has negative chunk_index %d", ErrInvalidArgument, m.ChunkIndex)
	}
	return nil
}

// ChunkRecord is the unit written to and read from the store.
type ChunkRecord struct {
	ID     string        `json:"id"`
	Text   string        `json:"text"`
	Vector []float64     `json:"-"`
	Meta   ChunkMetadata `json:"metadata"`
}

// ChunkHit is a chunk returned by a nearest-neighbour query, with the
// cosine distance (1 - cosine similarity) to the query vector.
type ChunkHit struct {
	ID       string
	Meta     ChunkMetadata
	Distance float64
}
