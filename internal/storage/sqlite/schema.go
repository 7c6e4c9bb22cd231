// ABOUTME: SQLite schema for the article chunk collection
// ABOUTME: One row per chunk plus a single-row index_meta table
package sqlite

// Schema contains all SQL statements for database initialization
const Schema = `
-- Chunk collection: one row per embedded text segment
CREATE TABLE IF NOT EXISTS chunks (
    id TEXT PRIMARY KEY,
    article_id TEXT NOT NULL,
    category TEXT NOT NULL,
    source_file TEXT NOT NULL,
    chunk_index INTEGER NOT NULL,
    title TEXT NOT NULL,
    content TEXT NOT NULL,
    vector BLOB NOT NULL,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Build configuration the index was produced with (singleton row)
CREATE TABLE IF NOT EXISTS index_meta (
    id INTEGER PRIMARY KEY CHECK (id = 1),
    embedding_model TEXT NOT NULL,
    token_encoding TEXT NOT NULL,
    chunk_size INTEGER NOT NULL,
    chunk_overlap INTEGER NOT NULL,
    dimension INTEGER NOT NULL,
    schema_version INTEGER NOT NULL,
    build_id TEXT NOT NULL,
    built_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Indexes for efficient querying
CREATE INDEX IF NOT EXISTS idx_chunks_article ON chunks(article_id);
CREATE INDEX IF NOT EXISTS idx_chunks_category ON chunks(category);
`

// SchemaVersion is the current schema version, persisted in index_meta
const SchemaVersion = 1
