// ABOUTME: Index builder: walks the category/PDF tree and populates the store
// ABOUTME: Extract, chunk, batch-embed, batch-upsert; per-file failures become skip records
package index

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ThyagoSnt/articlestore/internal/chunker"
	"github.com/ThyagoSnt/articlestore/internal/models"
	"github.com/ThyagoSnt/articlestore/internal/storage/sqlite"
)

// Extractor converts one PDF file into plain text.
type Extractor interface {
	Extract(ctx context.Context, path string) (string, error)
}

// Embedder maps a batch of texts to vectors, preserving order.
type Embedder interface {
	EmbedBatch(ctx context.Context, texts []string) ([][]float64, error)
	Model() string
}

// ChunkWriter is the store surface the builder needs.
type ChunkWriter interface {
	UpsertChunks(records []models.ChunkRecord) error
	SaveIndexMeta(meta models.IndexMeta) error
}

// Config carries the chunking and encoding settings a build runs with.
// They are persisted as index meta so query time can verify them.
type Config struct {
	ChunkSize    int
	ChunkOverlap int
	Encoding     string
}

// Builder orchestrates Extractor -> Chunker -> Embedder -> Store.
type Builder struct {
	extractor Extractor
	tokenizer chunker.Tokenizer
	embedder  Embedder
	store     ChunkWriter
	cfg       Config
}

// NewBuilder wires the build pipeline. Chunk parameters are validated up
// front so a misconfigured build fails before touching any file.
func NewBuilder(extractor Extractor, tokenizer chunker.Tokenizer, embedder Embedder, store ChunkWriter, cfg Config) (*Builder, error) {
	if cfg.ChunkSize <= 0 {
		return nil, fmt.Errorf("%w: chunk size must be positive, got %d", models.ErrInvalidArgument, cfg.ChunkSize)
	}
	if cfg.ChunkOverlap < 0 || cfg.ChunkOverlap >= cfg.ChunkSize {
		return nil, fmt.Errorf("%w: overlap must be in [0, chunk size), got %d", models.ErrInvalidArgument, cfg.ChunkOverlap)
	}
	return &Builder{
		extractor: extractor,
		tokenizer: tokenizer,
		embedder:  embedder,
		store:     store,
		cfg:       cfg,
	}, nil
}

// Build walks rootDir as a two-level hierarchy (category directories
// containing PDF files) and populates the store.
//
// A missing root or an empty walk is a logged no-op, not an error: the
// store is left untouched. Per-file failures are recorded and skipped.
// Embedding or store failures abort the build, since a partial write
// would leave the index inconsistent with its meta.
func (b *Builder) Build(ctx context.Context, rootDir string) (*models.BuildResult, error) {
	start := time.Now()
	result := &models.BuildResult{BuildID: uuid.New().String()}

	entries, err := os.ReadDir(rootDir)
	if err != nil {
		log.Printf("PDF root %s not readable, nothing to index: %v", rootDir, err)
		return result, nil
	}

	var records []models.ChunkRecord
	articles := map[string]bool{}

	for _, entry := range sortedNames(entries) {
		categoryDir := filepath.Join(rootDir, entry)
		info, err := os.Stat(categoryDir)
		if err != nil || !info.IsDir() {
			continue
		}
		category := entry
		log.Printf("processing category: %s", category)

		files, err := os.ReadDir(categoryDir)
		if err != nil {
			result.Skipped = append(result.Skipped, models.SkipRecord{
				File:   categoryDir,
				Reason: fmt.Sprintf("reading category directory: %v", err),
			})
			continue
		}

		for _, name := range sortedNames(files) {
			if strings.ToLower(filepath.Ext(name)) != ".pdf" {
				continue
			}
			path := filepath.Join(categoryDir, name)

			fileRecords, skip := b.processFile(ctx, path, category, name)
			if skip != nil {
				log.Printf("skipping %s: %s", skip.File, skip.Reason)
				result.Skipped = append(result.Skipped, *skip)
				continue
			}

			articles[models.ArticleID(category, name)] = true
			records = append(records, fileRecords...)
		}
	}

	if len(records) == 0 {
		log.Printf("no chunks to index under %s", rootDir)
		result.Duration = time.Since(start)
		return result, nil
	}

	texts := make([]string, len(records))
	for i, rec := range records {
		texts[i] = rec.Text
	}

	log.Printf("embedding %d chunks from %d articles", len(records), len(articles))
	vectors, err := b.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("embedding chunk batch: %w", err)
	}
	if len(vectors) != len(records) {
		return nil, fmt.Errorf("%w: got %d vectors for %d chunks", models.ErrEmbedding, len(vectors), len(records))
	}
	for i := range records {
		records[i].Vector = vectors[i]
	}

	if err := b.store.UpsertChunks(records); err != nil {
		return nil, fmt.Errorf("writing chunk batch: %w", err)
	}

	meta := models.IndexMeta{
		EmbeddingModel: b.embedder.Model(),
		Encoding:       b.cfg.Encoding,
		ChunkSize:      b.cfg.ChunkSize,
		ChunkOverlap:   b.cfg.ChunkOverlap,
		Dimension:      len(vectors[0]),
		SchemaVersion:  sqlite.SchemaVersion,
		BuildID:        result.BuildID,
		BuiltAt:        time.Now().UTC(),
	}
	if err := b.store.SaveIndexMeta(meta); err != nil {
		return nil, fmt.Errorf("writing index meta: %w", err)
	}

	result.ArticlesIndexed = len(articles)
	result.ChunksIndexed = len(records)
	result.Duration = time.Since(start)
	log.Printf("index built: %d articles, %d chunks, %d skipped", result.ArticlesIndexed, result.ChunksIndexed, len(result.Skipped))
	return result, nil
}

// processFile turns one PDF into tagged chunk records, or a skip record.
func (b *Builder) processFile(ctx context.Context, path, category, fileName string) ([]models.ChunkRecord, *models.SkipRecord) {
	text, err := b.extractor.Extract(ctx, path)
	if err != nil {
		return nil, &models.SkipRecord{File: path, Reason: fmt.Sprintf("extraction failed: %v", err)}
	}

	chunks, err := chunker.Chunk(text, b.cfg.ChunkSize, b.cfg.ChunkOverlap, b.tokenizer)
	if err != nil {
		return nil, &models.SkipRecord{File: path, Reason: fmt.Sprintf("chunking failed: %v", err)}
	}
	if len(chunks) == 0 {
		return nil, &models.SkipRecord{File: path, Reason: "no chunks produced"}
	}

	articleID := models.ArticleID(category, fileName)
	title := models.TitleFromFile(fileName)

	records := make([]models.ChunkRecord, len(chunks))
	for i, c := range chunks {
		records[i] = models.ChunkRecord{
			ID:   models.ChunkID(articleID, i),
			Text: c,
			Meta: models.ChunkMetadata{
				Category:   category,
				SourceFile: fileName,
				ChunkIndex: i,
				ArticleID:  articleID,
				Title:      title,
			},
		}
	}
	return records, nil
}

// sortedNames returns directory entry names in lexicographic order, which
// keeps builds deterministic across platforms.
func sortedNames(entries []os.DirEntry) []string {
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name()
	}
	sort.Strings(names)
	return names
}
