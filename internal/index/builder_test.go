// ABOUTME: Tests for the index build pipeline
// ABOUTME: Uses fake extractor/embedder doubles and an in-memory sqlite store
package index

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ThyagoSnt/articlestore/internal/models"
	"github.com/ThyagoSnt/articlestore/internal/storage/sqlite"
)

// wordTokenizer maps each whitespace-separated word to one token.
type wordTokenizer struct {
	words   []string
	reverse map[string]int
}

func newWordTokenizer() *wordTokenizer {
	return &wordTokenizer{reverse: map[string]int{}}
}

func (w *wordTokenizer) Encode(text string) []int {
	var tokens []int
	for _, word := range strings.Fields(text) {
		id, ok := w.reverse[word]
		if !ok {
			id = len(w.words)
			w.words = append(w.words, word)
			w.reverse[word] = id
		}
		tokens = append(tokens, id)
	}
	return tokens
}

func (w *wordTokenizer) Decode(tokens []int) string {
	parts := make([]string, len(tokens))
	for i, id := range tokens {
		parts[i] = w.words[id]
	}
	return strings.Join(parts, " ")
}

// fakeExtractor returns canned text keyed by file basename.
type fakeExtractor struct {
	texts map[string]string
	fail  map[string]error
}

func (f *fakeExtractor) Extract(_ context.Context, path string) (string, error) {
	name := filepath.Base(path)
	if err, ok := f.fail[name]; ok {
		return "", err
	}
	text, ok := f.texts[name]
	if !ok {
		return "", fmt.Errorf("%w: %s", models.ErrNotFound, path)
	}
	return text, nil
}

// fakeEmbedder produces a fixed-dimension vector per text: texts containing
// "hello" point along the x axis, everything else along y.
type fakeEmbedder struct {
	calls int
}

func (f *fakeEmbedder) EmbedBatch(_ context.Context, texts []string) ([][]float64, error) {
	f.calls++
	vectors := make([][]float64, len(texts))
	for i, text := range texts {
		if strings.Contains(text, "hello") {
			vectors[i] = []float64{1, 0}
		} else {
			vectors[i] = []float64{0, 1}
		}
	}
	return vectors, nil
}

func (f *fakeEmbedder) Model() string { return "fake-embedder" }

// failingEmbedder always errors.
type failingEmbedder struct{}

func (failingEmbedder) EmbedBatch(_ context.Context, _ []string) ([][]float64, error) {
	return nil, fmt.Errorf("%w: provider down", models.ErrEmbedding)
}

func (failingEmbedder) Model() string { return "fake-embedder" }

// writeTree creates a category/PDF hierarchy of empty placeholder files;
// the fake extractor supplies the text.
func writeTree(t *testing.T, tree map[string][]string) string {
	t.Helper()
	root := t.TempDir()
	for category, files := range tree {
		dir := filepath.Join(root, category)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", dir, err)
		}
		for _, name := range files {
			if err := os.WriteFile(filepath.Join(dir, name), []byte("%PDF"), 0o644); err != nil {
				t.Fatalf("writing %s: %v", name, err)
			}
		}
	}
	return root
}

func newTestBuilder(t *testing.T, ex Extractor, em Embedder, cfg Config) (*Builder, *sqlite.Store) {
	t.Helper()
	store, err := sqlite.NewStoreInMemory()
	if err != nil {
		t.Fatalf("NewStoreInMemory() error = %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	b, err := NewBuilder(ex, newWordTokenizer(), em, store, cfg)
	if err != nil {
		t.Fatalf("NewBuilder() error = %v", err)
	}
	return b, store
}

func TestNewBuilderValidatesChunking(t *testing.T) {
	store, _ := sqlite.NewStoreInMemory()
	defer func() { _ = store.Close() }()

	tests := []Config{
		{ChunkSize: 0, ChunkOverlap: 0},
		{ChunkSize: 10, ChunkOverlap: 10},
		{ChunkSize: 10, ChunkOverlap: -1},
	}
	for _, cfg := range tests {
		_, err := NewBuilder(&fakeExtractor{}, newWordTokenizer(), &fakeEmbedder{}, store, cfg)
		if !errors.Is(err, models.ErrInvalidArgument) {
			t.Errorf("NewBuilder(%+v) error = %v, want ErrInvalidArgument", cfg, err)
		}
	}
}

func TestBuildMissingRootIsNoOp(t *testing.T) {
	b, store := newTestBuilder(t, &fakeExtractor{}, &fakeEmbedder{}, Config{ChunkSize: 100, ChunkOverlap: 10, Encoding: "test"})

	result, err := b.Build(context.Background(), filepath.Join(t.TempDir(), "does-not-exist"))
	if err != nil {
		t.Fatalf("Build() error = %v, want nil for missing root", err)
	}
	if result.ChunksIndexed != 0 {
		t.Errorf("ChunksIndexed = %d, want 0", result.ChunksIndexed)
	}

	n, _ := store.CountChunks()
	if n != 0 {
		t.Errorf("store has %d chunks, want 0", n)
	}
}

func TestBuildTwoCategories(t *testing.T) {
	root := writeTree(t, map[string][]string{
		"tech": {"a.pdf"},
		"med":  {"b.pdf"},
	})
	ex := &fakeExtractor{texts: map[string]string{
		"a.pdf": "hello world",
		"b.pdf": "goodbye world",
	}}
	em := &fakeEmbedder{}
	b, store := newTestBuilder(t, ex, em, Config{ChunkSize: 100, ChunkOverlap: 10, Encoding: "test"})

	result, err := b.Build(context.Background(), root)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if result.ArticlesIndexed != 2 {
		t.Errorf("ArticlesIndexed = %d, want 2", result.ArticlesIndexed)
	}
	if result.ChunksIndexed != 2 {
		t.Errorf("ChunksIndexed = %d, want 2", result.ChunksIndexed)
	}
	if len(result.Skipped) != 0 {
		t.Errorf("Skipped = %v, want none", result.Skipped)
	}
	if result.BuildID == "" {
		t.Error("BuildID is empty")
	}

	// One batch embed call for the whole build.
	if em.calls != 1 {
		t.Errorf("embedder called %d times, want 1", em.calls)
	}

	chunks, err := store.GetArticleChunks("tech_a")
	if err != nil {
		t.Fatalf("GetArticleChunks() error = %v", err)
	}
	if len(chunks) != 1 || chunks[0].Text != "hello world" {
		t.Errorf("tech_a chunks = %+v, want single hello world chunk", chunks)
	}
	if chunks[0].ID != "tech_a_0" {
		t.Errorf("chunk id = %s, want tech_a_0", chunks[0].ID)
	}
	if chunks[0].Meta.Title != "a" || chunks[0].Meta.Category != "tech" || chunks[0].Meta.SourceFile != "a.pdf" {
		t.Errorf("chunk metadata = %+v", chunks[0].Meta)
	}
}

func TestBuildWritesIndexMeta(t *testing.T) {
	root := writeTree(t, map[string][]string{"tech": {"a.pdf"}})
	ex := &fakeExtractor{texts: map[string]string{"a.pdf": "hello world"}}
	b, store := newTestBuilder(t, ex, &fakeEmbedder{}, Config{ChunkSize: 64, ChunkOverlap: 8, Encoding: "test-enc"})

	result, err := b.Build(context.Background(), root)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	meta, err := store.GetIndexMeta()
	if err != nil {
		t.Fatalf("GetIndexMeta() error = %v", err)
	}
	if meta == nil {
		t.Fatal("GetIndexMeta() = nil after build")
	}
	if meta.EmbeddingModel != "fake-embedder" || meta.Encoding != "test-enc" {
		t.Errorf("meta model/encoding = %q/%q", meta.EmbeddingModel, meta.Encoding)
	}
	if meta.ChunkSize != 64 || meta.ChunkOverlap != 8 {
		t.Errorf("meta chunking = (%d, %d), want (64, 8)", meta.ChunkSize, meta.ChunkOverlap)
	}
	if meta.Dimension != 2 {
		t.Errorf("meta dimension = %d, want 2", meta.Dimension)
	}
	if meta.BuildID != result.BuildID {
		t.Errorf("meta build id = %q, want %q", meta.BuildID, result.BuildID)
	}
}

func TestBuildSkipsFailedFiles(t *testing.T) {
	root := writeTree(t, map[string][]string{
		"tech": {"bad.pdf", "good.pdf", "empty.pdf"},
	})
	ex := &fakeExtractor{
		texts: map[string]string{
			"good.pdf":  "hello world",
			"empty.pdf": "   ",
		},
		fail: map[string]error{
			"bad.pdf": fmt.Errorf("%w: scanned garbage", models.ErrNoExtractableText),
		},
	}
	b, store := newTestBuilder(t, ex, &fakeEmbedder{}, Config{ChunkSize: 100, ChunkOverlap: 10, Encoding: "test"})

	result, err := b.Build(context.Background(), root)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if result.ArticlesIndexed != 1 || result.ChunksIndexed != 1 {
		t.Errorf("indexed = (%d articles, %d chunks), want (1, 1)", result.ArticlesIndexed, result.ChunksIndexed)
	}
	if len(result.Skipped) != 2 {
		t.Fatalf("Skipped = %v, want 2 records", result.Skipped)
	}

	// Skips are ordered by walk order: bad.pdf, then empty.pdf.
	if filepath.Base(result.Skipped[0].File) != "bad.pdf" {
		t.Errorf("first skip = %s, want bad.pdf", result.Skipped[0].File)
	}
	if filepath.Base(result.Skipped[1].File) != "empty.pdf" {
		t.Errorf("second skip = %s, want empty.pdf", result.Skipped[1].File)
	}

	n, _ := store.CountChunks()
	if n != 1 {
		t.Errorf("store has %d chunks, want 1", n)
	}
}

func TestBuildIgnoresNonPDFAndTopLevelFiles(t *testing.T) {
	root := writeTree(t, map[string][]string{"tech": {"a.pdf", "notes.txt"}})
	// A stray top-level file must be ignored, not treated as a category.
	if err := os.WriteFile(filepath.Join(root, "README.md"), []byte("readme"), 0o644); err != nil {
		t.Fatalf("writing top-level file: %v", err)
	}

	ex := &fakeExtractor{texts: map[string]string{"a.pdf": "hello world"}}
	b, _ := newTestBuilder(t, ex, &fakeEmbedder{}, Config{ChunkSize: 100, ChunkOverlap: 10, Encoding: "test"})

	result, err := b.Build(context.Background(), root)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if result.ArticlesIndexed != 1 || len(result.Skipped) != 0 {
		t.Errorf("result = %+v, want 1 article and no skips", result)
	}
}

func TestBuildEmptyTreeIsNoOp(t *testing.T) {
	root := writeTree(t, map[string][]string{"tech": {}})
	b, store := newTestBuilder(t, &fakeExtractor{}, &fakeEmbedder{}, Config{ChunkSize: 100, ChunkOverlap: 10, Encoding: "test"})

	result, err := b.Build(context.Background(), root)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if result.ChunksIndexed != 0 {
		t.Errorf("ChunksIndexed = %d, want 0", result.ChunksIndexed)
	}

	// No meta is written for an empty build.
	meta, err := store.GetIndexMeta()
	if err != nil {
		t.Fatalf("GetIndexMeta() error = %v", err)
	}
	if meta != nil {
		t.Error("GetIndexMeta() should be nil after empty build")
	}
}

func TestBuildEmbeddingFailureAborts(t *testing.T) {
	root := writeTree(t, map[string][]string{"tech": {"a.pdf"}})
	ex := &fakeExtractor{texts: map[string]string{"a.pdf": "hello world"}}
	b, store := newTestBuilder(t, ex, failingEmbedder{}, Config{ChunkSize: 100, ChunkOverlap: 10, Encoding: "test"})

	_, err := b.Build(context.Background(), root)
	if !errors.Is(err, models.ErrEmbedding) {
		t.Fatalf("Build() error = %v, want ErrEmbedding", err)
	}

	n, _ := store.CountChunks()
	if n != 0 {
		t.Errorf("store has %d chunks after failed build, want 0", n)
	}
}

func TestBuildRebuildIsIdempotent(t *testing.T) {
	root := writeTree(t, map[string][]string{"tech": {"a.pdf"}})
	ex := &fakeExtractor{texts: map[string]string{"a.pdf": "hello world again and again"}}
	b, store := newTestBuilder(t, ex, &fakeEmbedder{}, Config{ChunkSize: 3, ChunkOverlap: 1, Encoding: "test"})

	if _, err := b.Build(context.Background(), root); err != nil {
		t.Fatalf("first Build() error = %v", err)
	}
	first, _ := store.CountChunks()

	if _, err := b.Build(context.Background(), root); err != nil {
		t.Fatalf("second Build() error = %v", err)
	}
	second, _ := store.CountChunks()

	if first != second {
		t.Errorf("chunk count changed across rebuild: %d -> %d", first, second)
	}
}
