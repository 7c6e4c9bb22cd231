// ABOUTME: OpenAI embedding client used at index build and query time
// ABOUTME: Batch and single embedding with retry and exponential backoff
package llm

import (
	"context"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/ThyagoSnt/articlestore/internal/models"
)

// DefaultEmbeddingModel is used when the configuration leaves the model unset.
const DefaultEmbeddingModel = string(openai.SmallEmbedding3)

const requestTimeout = 60 * time.Second

// ClientConfig holds configuration for the embedding client.
type ClientConfig struct {
	APIKey     string
	Model      string
	MaxRetries int
	RetryDelay time.Duration
}

// Client wraps the OpenAI API client with retry logic. One instance is
// shared for the lifetime of the process.
type Client struct {
	client     *openai.Client
	model      openai.EmbeddingModel
	maxRetries int
	retryDelay time.Duration
}

// NewClient creates an embedding client.
func NewClient(cfg ClientConfig) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required (set OPENAI_API_KEY)")
	}

	model := cfg.Model
	if model == "" {
		model = DefaultEmbeddingModel
	}
	maxRetries := cfg.MaxRetries
	if maxRetries <= 0 {
		maxRetries = 3
	}
	retryDelay := cfg.RetryDelay
	if retryDelay <= 0 {
		retryDelay = 2 * time.Second
	}

	return &Client{
		client:     openai.NewClient(cfg.APIKey),
		model:      openai.EmbeddingModel(model),
		maxRetries: maxRetries,
		retryDelay: retryDelay,
	}, nil
}

// Model returns the embedding model identifier in use.
func (c *Client) Model() string {
	return string(c.model)
}

// EmbedBatch embeds all texts in a single API call, preserving input order.
func (c *Client) EmbedBatch(ctx context.Context, texts []string) ([][]float64, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, fmt.Errorf("%w: %v", models.ErrEmbedding, ctx.Err())
			case <-time.After(calculateBackoff(c.retryDelay, attempt)):
			}
		}

		reqCtx, cancel := context.WithTimeout(ctx, requestTimeout)
		resp, err := c.client.CreateEmbeddings(reqCtx, openai.EmbeddingRequestStrings{
			Input: texts,
			Model: c.model,
		})
		cancel()

		if err != nil {
			lastErr = fmt.Errorf("attempt %d: %w", attempt+1, err)
			continue
		}
		if len(resp.Data) != len(texts) {
			lastErr = fmt.Errorf("attempt %d: got %d embeddings for %d inputs", attempt+1, len(resp.Data), len(texts))
			continue
		}

		// Order by the response index rather than trusting slice order.
		vectors := make([][]float64, len(texts))
		for _, item := range resp.Data {
			if item.Index < 0 || item.Index >= len(vectors) {
				return nil, fmt.Errorf("%w: embedding index %d out of range", models.ErrEmbedding, item.Index)
			}
			vectors[item.Index] = toFloat64(item.Embedding)
		}
		return vectors, nil
	}

	return nil, fmt.Errorf("%w: %v", models.ErrEmbedding, lastErr)
}

// EmbedQuery embeds a single query string.
func (c *Client) EmbedQuery(ctx context.Context, text string) ([]float64, error) {
	vectors, err := c.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

func toFloat64(v []float32) []float64 {
	out := make([]float64, len(v))
	for i, f := range v {
		out[i] = float64(f)
	}
	return out
}
