// ABOUTME: Tokenizer backed by tiktoken BPE encodings
// ABOUTME: cl100k_base matches the OpenAI embedding models used for the index
package chunker

import (
	"fmt"

	"github.com/pkoukk/tiktoken-go"
)

// TiktokenTokenizer adapts a tiktoken encoding to the Tokenizer interface.
type TiktokenTokenizer struct {
	enc *tiktoken.Tiktoken
}

// NewTiktoken loads the named BPE encoding, e.g. "cl100k_base".
func NewTiktoken(encoding string) (*TiktokenTokenizer, error) {
	enc, err := tiktoken.GetEncoding(encoding)
	if err != nil {
		return nil, fmt.Errorf("loading token encoding %q: %w", encoding, err)
	}
	return &TiktokenTokenizer{enc: enc}, nil
}

// Encode tokenizes text. Special tokens are treated as plain text, since
// article content is untrusted input.
func (t *TiktokenTokenizer) Encode(text string) []int {
	return t.enc.Encode(text, nil, nil)
}

// Decode reverses Encode for a token window.
func (t *TiktokenTokenizer) Decode(tokens []int) string {
	return t.enc.Decode(tokens)
}
