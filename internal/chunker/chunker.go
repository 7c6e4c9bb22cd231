// ABOUTME: Sliding-window token chunking of extracted article text
// ABOUTME: Pure function of (text, size, overlap, tokenizer) for reproducible builds
package chunker

import (
	"fmt"
	"strings"

	"github.com/ThyagoSnt/articlestore/internal/models"
)

// Tokenizer turns text into token ids and back. The same tokenizer must be
// used at index build time and query time; it is pinned in the index meta.
type Tokenizer interface {
	Encode(text string) []int
	Decode(tokens []int) string
}

// Chunk splits text into windows of at most chunkSize tokens, with
// consecutive windows sharing overlap tokens. Whitespace-only windows are
// dropped. Empty input yields an empty slice, not an error.
func Chunk(text string, chunkSize, overlap int, tok Tokenizer) ([]string, error) {
	if chunkSize <= 0 {
		return nil, fmt.Errorf("%w: chunk size must be positive, got %d", models.ErrInvalidArgument, chunkSize)
	}
	if overlap < 0 || overlap >= chunkSize {
		return nil, fmt.Errorf("%w: overlap must be in [0, chunk size), got %d", models.ErrInvalidArgument, overlap)
	}

	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	tokens := tok.Encode(text)
	if len(tokens) == 0 {
		return nil, nil
	}

	step := chunkSize - overlap
	chunks := make([]string, 0, len(tokens)/step+1)

	for start := 0; start < len(tokens); start += step {
		end := start + chunkSize
		if end > len(tokens) {
			end = len(tokens)
		}

		decoded := tok.Decode(tokens[start:end])
		if strings.TrimSpace(decoded) != "" {
			chunks = append(chunks, decoded)
		}
	}

	return chunks, nil
}
