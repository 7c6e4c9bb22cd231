// ABOUTME: Index build result and persisted build configuration types
// ABOUTME: IndexMeta pins the tokenizer and chunk parameters to the index
package models

import "time"

// SkipRecord notes a file the index build could not process and why.
// Per-file failures are policy, not errors: the build carries on and the
// caller decides what to do with the skips.
type SkipRecord struct {
	File   string `json:"file"`
	Reason string `json:"reason"`
}

// BuildResult summarises one index build run.
type BuildResult struct {
	BuildID         string       `json:"build_id"`
	ArticlesIndexed int          `json:"articles_indexed"`
	ChunksIndexed   int          `json:"chunks_indexed"`
	Skipped         []SkipRecord `json:"skipped,omitempty"`
	Duration        time.Duration `json:"-"`
}

// IndexMeta records the configuration an index was built with. The query
// engine refuses to serve an index whose meta disagrees with the running
// configuration, since a mismatched tokenizer or embedding model silently
// corrupts results.
type IndexMeta struct {
	EmbeddingModel string    `json:"embedding_model"`
	Encoding       string    `json:"token_encoding"`
	ChunkSize      int       `json:"chunk_size"`
	ChunkOverlap   int       `json:"chunk_overlap"`
	Dimension      int       `json:"dimension"`
	SchemaVersion  int       `json:"schema_version"`
	BuildID        string    `json:"build_id"`
	BuiltAt        time.Time `json:"built_at"`
}
