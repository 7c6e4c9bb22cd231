// ABOUTME: Query engine: article-level similarity search and content retrieval
// ABOUTME: Aggregates chunk hits to articles by best score and reassembles full text
package search

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/ThyagoSnt/articlestore/internal/models"
)

// DefaultTopK is used when the caller does not specify a result limit.
const DefaultTopK = 5

// overFetchFactor compensates for several chunks of the same article
// crowding the raw top-k.
const overFetchFactor = 3

// Embedder maps a query string to a vector with the same model used at
// build time.
type Embedder interface {
	EmbedQuery(ctx context.Context, text string) ([]float64, error)
	Model() string
}

// ChunkSource is the store surface the engine needs.
type ChunkSource interface {
	QueryNearest(queryVector []float64, limit int) ([]models.ChunkHit, error)
	GetArticleChunks(articleID string) ([]models.ChunkRecord, error)
	GetIndexMeta() (*models.IndexMeta, error)
}

// Config is the expected index configuration, checked against the
// persisted index meta before the first query.
type Config struct {
	Encoding     string
	ChunkSize    int
	ChunkOverlap int
}

// Engine answers search and content requests against a built index.
type Engine struct {
	embedder Embedder
	store    ChunkSource
	cfg      Config

	metaOnce sync.Once
	metaErr  error
}

// NewEngine creates a query engine over the given store and embedder.
func NewEngine(embedder Embedder, store ChunkSource, cfg Config) *Engine {
	return &Engine{embedder: embedder, store: store, cfg: cfg}
}

// SearchArticles embeds the query, fetches the nearest chunks, and
// aggregates them to article level. An article's relevance is its
// best-matching chunk, so one strong passage surfaces the whole article.
// Results are sorted by score descending, ties broken by article id
// ascending; at most topK articles are returned. No match is an empty
// slice, not an error.
func (e *Engine) SearchArticles(ctx context.Context, query string, topK int) ([]models.SearchResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("%w: query must not be empty", models.ErrInvalidArgument)
	}
	if topK <= 0 {
		topK = DefaultTopK
	}
	if err := e.checkIndexMeta(); err != nil {
		return nil, err
	}

	queryVector, err := e.embedder.EmbedQuery(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}

	hits, err := e.store.QueryNearest(queryVector, topK*overFetchFactor)
	if err != nil {
		return nil, fmt.Errorf("querying store: %w", err)
	}
	if len(hits) == 0 {
		return nil, nil
	}

	// Keep the best-scoring chunk per article.
	best := map[string]models.SearchResult{}
	for _, hit := range hits {
		score := 1.0 / (1.0 + hit.Distance)
		current, ok := best[hit.Meta.ArticleID]
		if !ok || score > current.Score {
			title := hit.Meta.Title
			if title == "" {
				title = hit.Meta.SourceFile
			}
			best[hit.Meta.ArticleID] = models.SearchResult{
				ID:       hit.Meta.ArticleID,
				Title:    title,
				Category: hit.Meta.Category,
				Score:    score,
			}
		}
	}

	results := make([]models.SearchResult, 0, len(best))
	for _, r := range best {
		results = append(results, r)
	}
	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].ID < results[j].ID
	})

	if len(results) > topK {
		results = results[:topK]
	}
	return results, nil
}

// GetArticleContent reconstructs the full text of one article from its
// stored chunks, joined with newlines in chunk-index order.
func (e *Engine) GetArticleContent(ctx context.Context, articleID string) (*models.ArticleContent, error) {
	if strings.TrimSpace(articleID) == "" {
		return nil, fmt.Errorf("%w: article id must not be empty", models.ErrInvalidArgument)
	}
	if err := e.checkIndexMeta(); err != nil {
		return nil, err
	}

	chunks, err := e.store.GetArticleChunks(articleID)
	if err != nil {
		return nil, fmt.Errorf("fetching article chunks: %w", err)
	}
	if len(chunks) == 0 {
		return nil, fmt.Errorf("%w: article %q", models.ErrNotFound, articleID)
	}

	sort.SliceStable(chunks, func(i, j int) bool {
		return chunks[i].Meta.ChunkIndex < chunks[j].Meta.ChunkIndex
	})

	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Text
	}

	first := chunks[0].Meta
	title := first.Title
	if title == "" {
		title = first.SourceFile
	}

	return &models.ArticleContent{
		ID:       articleID,
		Title:    title,
		Category: first.Category,
		Content:  strings.Join(texts, "\n"),
	}, nil
}

// checkIndexMeta verifies once that the index was built with the running
// configuration. An unbuilt store (no meta) passes: queries against it
// simply find nothing.
func (e *Engine) checkIndexMeta() error {
	e.metaOnce.Do(func() {
		meta, err := e.store.GetIndexMeta()
		if err != nil {
			e.metaErr = err
			return
		}
		if meta == nil {
			return
		}

		if meta.EmbeddingModel != e.embedder.Model() {
			e.metaErr = fmt.Errorf("%w: index built with embedding model %q, running %q",
				models.ErrIndexMismatch, meta.EmbeddingModel, e.embedder.Model())
			return
		}
		if meta.Encoding != e.cfg.Encoding {
			e.metaErr = fmt.Errorf("%w: index built with token encoding %q, running %q",
				models.ErrIndexMismatch, meta.Encoding, e.cfg.Encoding)
			return
		}
		if meta.ChunkSize != e.cfg.ChunkSize || meta.ChunkOverlap != e.cfg.ChunkOverlap {
			e.metaErr = fmt.Errorf("%w: index built with chunking (%d, %d), running (%d, %d)",
				models.ErrIndexMismatch, meta.ChunkSize, meta.ChunkOverlap, e.cfg.ChunkSize, e.cfg.ChunkOverlap)
			return
		}
	})
	return e.metaErr
}
