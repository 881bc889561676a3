// Package embeddings turns chunk texts into vectors through an Ollama
// embedding model.
package embeddings

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/tmc/langchaingo/llms/ollama"

	"github.com/nrivera/botkb/internal/logging"
)

// Client batches embedding requests against one Ollama model. A zero
// timeout disables the per-call deadline.
type Client struct {
	model   string
	llm     *ollama.LLM
	timeout time.Duration
	log     logging.Logger
}

func NewClient(baseURL, model string, timeout time.Duration, log logging.Logger) (*Client, error) {
	opts := []ollama.Option{
		ollama.WithModel(model),
		ollama.WithHTTPClient(&http.Client{Timeout: 30 * time.Second}),
	}
	if url := strings.TrimSpace(baseURL); url != "" {
		opts = append(opts, ollama.WithServerURL(url))
	}

	llm, err := ollama.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("create ollama client: %w", err)
	}
	return &Client{
		model:   model,
		llm:     llm,
		timeout: timeout,
		log:     log.WithName("ollama"),
	}, nil
}

// EmbedTexts embeds every input in one call, preserving order. The
// returned slice has one vector per input.
func (c *Client) EmbedTexts(ctx context.Context, inputs []string) ([][]float32, error) {
	if len(inputs) == 0 {
		return nil, errors.New("no inputs provided for embedding")
	}
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	start := time.Now()
	c.log.Debug("embedding inputs", "count", len(inputs), "model", c.model)

	vectors, err := c.llm.CreateEmbedding(ctx, inputs)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			err = fmt.Errorf("embedding call timed out after %s: %w", c.timeout, err)
		}
		c.log.Error(err, "embedding failed", "elapsed", time.Since(start).String())
		return nil, fmt.Errorf("create embedding: %w", err)
	}

	c.log.Debug("embedded inputs", "count", len(vectors), "elapsed", time.Since(start).String())
	return vectors, nil
}
