// ABOUTME: Chunk persistence: batch upsert, similarity query, metadata fetch
// ABOUTME: Vectors are stored as little-endian float64 BLOBs
package sqlite

import (
	"encoding/binary"
	"fmt"
	"math"
	"sort"

	"github.com/ThyagoSnt/articlestore/internal/models"
)

// ChunkStore handles chunk persistence
type ChunkStore struct {
	db *DB
}

// NewChunkStore creates a new ChunkStore
func NewChunkStore(db *DB) *ChunkStore {
	return &ChunkStore{db: db}
}

// UpsertBatch writes all records in one transaction. Ids are deterministic,
// so re-running a build overwrites rows in place instead of duplicating
// them. Metadata is validated before anything is written.
func (s *ChunkStore) UpsertBatch(records []models.ChunkRecord) error {
	for _, rec := range records {
		if rec.ID == "" {
			return fmt.Errorf("%w: chunk record missing id", models.ErrInvalidArgument)
		}
		if len(rec.Vector) == 0 {
			return fmt.Errorf("%w: chunk %s has no vector", models.ErrInvalidArgument, rec.ID)
		}
		if err := rec.Meta.Validate(); err != nil {
			return fmt.Errorf("chunk %s: %w", rec.ID, err)
		}
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("%w: begin upsert: %v", models.ErrStore, err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.Prepare(`
		INSERT INTO chunks (id, article_id, category, source_file, chunk_index, title, content, vector)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			article_id = excluded.article_id,
			category = excluded.category,
			source_file = excluded.source_file,
			chunk_index = excluded.chunk_index,
			title = excluded.title,
			content = excluded.content,
			vector = excluded.vector
	`)
	if err != nil {
		return fmt.Errorf("%w: prepare upsert: %v", models.ErrStore, err)
	}
	defer func() { _ = stmt.Close() }()

	for _, rec := range records {
		_, err := stmt.Exec(
			rec.ID,
			rec.Meta.ArticleID,
			rec.Meta.Category,
			rec.Meta.SourceFile,
			rec.Meta.ChunkIndex,
			rec.Meta.Title,
			rec.Text,
			vectorToBlob(rec.Vector),
		)
		if err != nil {
			return fmt.Errorf("%w: upserting chunk %s: %v", models.ErrStore, rec.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit upsert: %v", models.ErrStore, err)
	}
	return nil
}

// QueryNearest returns up to limit chunks ordered by cosine distance to
// the query vector (nearest first). The scan is brute force over all rows,
// which is fine at article-library scale.
func (s *ChunkStore) QueryNearest(queryVector []float64, limit int) ([]models.ChunkHit, error) {
	rows, err := s.db.Query(`
		SELECT id, article_id, category, source_file, chunk_index, title, vector
		FROM chunks
	`)
	if err != nil {
		return nil, fmt.Errorf("%w: querying chunks: %v", models.ErrStore, err)
	}
	defer func() { _ = rows.Close() }()

	var hits []models.ChunkHit
	for rows.Next() {
		var (
			hit  models.ChunkHit
			blob []byte
		)
		if err := rows.Scan(&hit.ID, &hit.Meta.ArticleID, &hit.Meta.Category,
			&hit.Meta.SourceFile, &hit.Meta.ChunkIndex, &hit.Meta.Title, &blob); err != nil {
			return nil, fmt.Errorf("%w: scanning chunk: %v", models.ErrStore, err)
		}

		hit.Distance = 1 - CosineSimilarity(queryVector, blobToVector(blob))
		hits = append(hits, hit)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating chunks: %v", models.ErrStore, err)
	}

	// Sort by distance ascending; equal distances order by id for a
	// reproducible result.
	sort.Slice(hits, func(i, j int) bool {
		if hits[i].Distance != hits[j].Distance {
			return hits[i].Distance < hits[j].Distance
		}
		return hits[i].ID < hits[j].ID
	})

	if len(hits) > limit {
		hits = hits[:limit]
	}
	return hits, nil
}

// GetByArticle returns all chunks of one article ordered by chunk index.
func (s *ChunkStore) GetByArticle(articleID string) ([]models.ChunkRecord, error) {
	rows, err := s.db.Query(`
		SELECT id, article_id, category, source_file, chunk_index, title, content, vector
		FROM chunks
		WHERE article_id = ?
		ORDER BY chunk_index ASC
	`, articleID)
	if err != nil {
		return nil, fmt.Errorf("%w: fetching article %s: %v", models.ErrStore, articleID, err)
	}
	defer func() { _ = rows.Close() }()

	var records []models.ChunkRecord
	for rows.Next() {
		var (
			rec  models.ChunkRecord
			blob []byte
		)
		if err := rows.Scan(&rec.ID, &rec.Meta.ArticleID, &rec.Meta.Category,
			&rec.Meta.SourceFile, &rec.Meta.ChunkIndex, &rec.Meta.Title, &rec.Text, &blob); err != nil {
			return nil, fmt.Errorf("%w: scanning chunk: %v", models.ErrStore, err)
		}
		rec.Vector = blobToVector(blob)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating chunks: %v", models.ErrStore, err)
	}
	return records, nil
}

// ListArticles summarises the indexed articles, ordered by article id.
func (s *ChunkStore) ListArticles() ([]models.ArticleInfo, error) {
	rows, err := s.db.Query(`
		SELECT article_id, MIN(title), MIN(category), COUNT(*)
		FROM chunks
		GROUP BY article_id
		ORDER BY article_id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("%w: listing articles: %v", models.ErrStore, err)
	}
	defer func() { _ = rows.Close() }()

	var articles []models.ArticleInfo
	for rows.Next() {
		var info models.ArticleInfo
		if err := rows.Scan(&info.ID, &info.Title, &info.Category, &info.ChunkCount); err != nil {
			return nil, fmt.Errorf("%w: scanning article: %v", models.ErrStore, err)
		}
		articles = append(articles, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating articles: %v", models.ErrStore, err)
	}
	return articles, nil
}

// Count returns the total number of stored chunks.
func (s *ChunkStore) Count() (int, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM chunks`).Scan(&n); err != nil {
		return 0, fmt.Errorf("%w: counting chunks: %v", models.ErrStore, err)
	}
	return n, nil
}

// vectorToBlob converts a float64 slice to binary blob
func vectorToBlob(vector []float64) []byte {
	blob := make([]byte, len(vector)*8)
	for i, v := range vector {
		binary.LittleEndian.PutUint64(blob[i*8:], math.Float64bits(v))
	}
	return blob
}

// blobToVector converts a binary blob to float64 slice
func blobToVector(blob []byte) []float64 {
	count := len(blob) / 8
	vector := make([]float64, count)
	for i := 0; i < count; i++ {
		bits := binary.LittleEndian.Uint64(blob[i*8:])
		vector[i] = math.Float64frombits(bits)
	}
	return vector
}

// CosineSimilarity calculates cosine similarity between two vectors
func CosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) {
		return 0.0
	}

	var dotProduct, normA, normB float64
	for i := range a {
		dotProduct += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0.0
	}

	return dotProduct / (math.Sqrt(normA) * math.Sqrt(normB))
}
