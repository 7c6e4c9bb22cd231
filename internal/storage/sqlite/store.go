// ABOUTME: Unified Store facade over the chunk and meta stores
// ABOUTME: One Store instance is shared for the lifetime of the process
package sqlite

import (
	"fmt"

	"github.com/ThyagoSnt/articlestore/internal/models"
)

// Store manages all persistent data for the article index.
type Store struct {
	db     *DB
	chunks *ChunkStore
	meta   *MetaStore
}

// NewStore opens (or creates) the database at path.
func NewStore(path string) (*Store, error) {
	db, err := Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrStore, err)
	}
	return newStore(db), nil
}

// NewStoreInMemory creates an in-memory store (for testing).
func NewStoreInMemory() (*Store, error) {
	db, err := OpenInMemory()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrStore, err)
	}
	return newStore(db), nil
}

func newStore(db *DB) *Store {
	return &Store{
		db:     db,
		chunks: NewChunkStore(db),
		meta:   NewMetaStore(db),
	}
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// UpsertChunks writes all records in one batch.
func (s *Store) UpsertChunks(records []models.ChunkRecord) error {
	return s.chunks.UpsertBatch(records)
}

// QueryNearest returns up to limit chunks nearest to the query vector.
func (s *Store) QueryNearest(queryVector []float64, limit int) ([]models.ChunkHit, error) {
	return s.chunks.QueryNearest(queryVector, limit)
}

// GetArticleChunks returns all chunks of an article in chunk-index order.
func (s *Store) GetArticleChunks(articleID string) ([]models.ChunkRecord, error) {
	return s.chunks.GetByArticle(articleID)
}

// ListArticles summarises all indexed articles.
func (s *Store) ListArticles() ([]models.ArticleInfo, error) {
	return s.chunks.ListArticles()
}

// CountChunks returns the total number of stored chunks.
func (s *Store) CountChunks() (int, error) {
	return s.chunks.Count()
}

// SaveIndexMeta records the configuration of the last successful build.
func (s *Store) SaveIndexMeta(meta models.IndexMeta) error {
	return s.meta.Save(meta)
}

// GetIndexMeta returns the last build configuration, or nil before the
// first build.
func (s *Store) GetIndexMeta() (*models.IndexMeta, error) {
	return s.meta.Get()
}
