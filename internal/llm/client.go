// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package llm

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"github.com/tmc/langchaingo/schema"

	"github.com/pdiddy/handover-engine/pkg/types"
)

// defaultBaseURL is the Upstage OpenAI-compatible endpoint.
const defaultBaseURL = "https://api.upstage.ai/v1"

const defaultMaxRetries = 3

// backoffBase controls the base duration for exponential backoff on
// failed API calls. Tests override this to avoid real sleeps.
var backoffBase = time.Second

// Client is a ChatModel backed by an OpenAI-compatible chat completion
// API. Failed calls are retried with exponential backoff.
type Client struct {
	model      llms.Model
	maxRetries int
}

// NewClient builds a chat client for the given model name.
func NewClient(cfg types.AIConfig, model string) (*Client, error) {
	lc, err := newOpenAI(cfg, model, "")
	if err != nil {
		return nil, fmt.Errorf("creating chat client for %s: %w", model, err)
	}
	return &Client{model: lc, maxRetries: retries(cfg)}, nil
}

// Complete sends the system and user prompts and returns the first
// choice's text.
func (c *Client) Complete(ctx context.Context, system, user string, temperature float64) (string, error) {
	messages := []llms.MessageContent{
		llms.TextParts(schema.ChatMessageTypeSystem, system),
		llms.TextParts(schema.ChatMessageTypeHuman, user),
	}

	var resp *llms.ContentResponse
	err := withRetry(ctx, c.maxRetries, func() error {
		var callErr error
		resp, callErr = c.model.GenerateContent(ctx, messages, llms.WithTemperature(temperature))
		return callErr
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion: empty response")
	}
	return resp.Choices[0].Content, nil
}

// EmbeddingClient is an Embedder backed by an OpenAI-compatible
// embeddings API.
type EmbeddingClient struct {
	llm        *openai.LLM
	maxRetries int
}

// NewEmbeddingClient builds an embedding client. The model name is
// injected by the caller so ingestion and retrieval cannot drift apart.
func NewEmbeddingClient(cfg types.AIConfig, model string) (*EmbeddingClient, error) {
	lc, err := newOpenAI(cfg, "", model)
	if err != nil {
		return nil, fmt.Errorf("creating embedding client for %s: %w", model, err)
	}
	return &EmbeddingClient{llm: lc, maxRetries: retries(cfg)}, nil
}

// EmbedQuery embeds a single query string.
func (e *EmbeddingClient) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	vecs, err := e.EmbedDocuments(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vecs[0], nil
}

// EmbedDocuments embeds a batch of texts, preserving order.
func (e *EmbeddingClient) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {
	var vecs [][]float32
	err := withRetry(ctx, e.maxRetries, func() error {
		var callErr error
		vecs, callErr = e.llm.CreateEmbedding(ctx, texts)
		return callErr
	})
	if err != nil {
		return nil, fmt.Errorf("embedding %d text(s): %w", len(texts), err)
	}
	if len(vecs) != len(texts) {
		return nil, fmt.Errorf("embedding: got %d vectors for %d texts", len(vecs), len(texts))
	}
	return vecs, nil
}

func newOpenAI(cfg types.AIConfig, model, embeddingModel string) (*openai.LLM, error) {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	opts := []openai.Option{
		openai.WithToken(cfg.APIKey),
		openai.WithBaseURL(baseURL),
	}
	if model != "" {
		opts = append(opts, openai.WithModel(model))
	}
	if embeddingModel != "" {
		opts = append(opts, openai.WithEmbeddingModel(embeddingModel))
	}
	if cfg.Timeout > 0 {
		opts = append(opts, openai.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}))
	}

	return openai.New(opts...)
}

func retries(cfg types.AIConfig) int {
	if cfg.MaxRetries <= 0 {
		return defaultMaxRetries
	}
	return cfg.MaxRetries
}

// withRetry runs fn until it succeeds or maxRetries extra attempts are
// exhausted, sleeping exponentially between attempts.
func withRetry(ctx context.Context, maxRetries int, fn func() error) error {
	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(math.Pow(2, float64(attempt-1))) * backoffBase
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
		}

		if err := fn(); err == nil {
			return nil
		} else {
			lastErr = err
		}
	}
	return fmt.Errorf("after %d retries: %w", maxRetries, lastErr)
}
