// ABOUTME: Sentinel errors shared across the article store
// ABOUTME: Callers distinguish failure classes with errors.Is
package models

import "errors"

var (
	// ErrNotFound reports a missing file or an unknown article id.
	ErrNotFound = errors.New("not found")

	// ErrInvalidFormat reports a file that is not a PDF.
	ErrInvalidFormat = errors.New("invalid format")

	// ErrInvalidArgument reports bad chunk parameters or an empty query.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNoExtractableText reports a PDF where both the embedded-text and
	// OCR extraction paths produced nothing.
	ErrNoExtractableText = errors.New("no extractable text")

	// ErrStore reports a persistence failure in the chunk store.
	ErrStore = errors.New("store failure")

	// ErrEmbedding reports an embedding provider failure.
	ErrEmbedding = errors.New("embedding failure")

	// ErrIndexMismatch reports a store built with a different embedding
	// model, token encoding, or chunk parameters than the running
	// configuration.
	ErrIndexMismatch = errors.New("index configuration mismatch")
)
