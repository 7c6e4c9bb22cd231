// ABOUTME: Index build metadata persistence (singleton row)
// ABOUTME: Pins the tokenizer, chunk parameters, and embedding model to the index
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ThyagoSnt/articlestore/internal/models"
)

// MetaStore handles the index_meta singleton row
type MetaStore struct {
	db *DB
}

// NewMetaStore creates a new MetaStore
func NewMetaStore(db *DB) *MetaStore {
	return &MetaStore{db: db}
}

// Save writes the build configuration, replacing any previous row.
func (s *MetaStore) Save(meta models.IndexMeta) error {
	_, err := s.db.Exec(`
		INSERT INTO index_meta (id, embedding_model, token_encoding, chunk_size, chunk_overlap, dimension, schema_version, build_id, built_at)
		VALUES (1, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			embedding_model = excluded.embedding_model,
			token_encoding = excluded.token_encoding,
			chunk_size = excluded.chunk_size,
			chunk_overlap = excluded.chunk_overlap,
			dimension = excluded.dimension,
			schema_version = excluded.schema_version,
			build_id = excluded.build_id,
			built_at = excluded.built_at
	`, meta.EmbeddingModel, meta.Encoding, meta.ChunkSize, meta.ChunkOverlap,
		meta.Dimension, meta.SchemaVersion, meta.BuildID, meta.BuiltAt)
	if err != nil {
		return fmt.Errorf("%w: saving index meta: %v", models.ErrStore, err)
	}
	return nil
}

// Get returns the stored build configuration, or nil if the index has
// never been built.
func (s *MetaStore) Get() (*models.IndexMeta, error) {
	var (
		meta    models.IndexMeta
		builtAt time.Time
	)
	err := s.db.QueryRow(`
		SELECT embedding_model, token_encoding, chunk_size, chunk_overlap, dimension, schema_version, build_id, built_at
		FROM index_meta
		WHERE id = 1
	`).Scan(&meta.EmbeddingModel, &meta.Encoding, &meta.ChunkSize, &meta.ChunkOverlap,
		&meta.Dimension, &meta.SchemaVersion, &meta.BuildID, &builtAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: reading index meta: %v", models.ErrStore, err)
	}

	meta.BuiltAt = builtAt
	return &meta, nil
}
