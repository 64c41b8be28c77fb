// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package llm wraps the generative AI API behind two narrow interfaces:
// chat completion for the analyzer and generator, and text embedding for
// the vector index. Implementations talk to any OpenAI-compatible
// endpoint through langchaingo.
package llm

import "context"

// ChatModel completes a system+user prompt pair into text. Temperature 0
// gives deterministic output for classification; higher values give more
// varied prose.
type ChatModel interface {
	Complete(ctx context.Context, system, user string, temperature float64) (string, error)
}

// Embedder turns text into embedding vectors. EmbedQuery and
// EmbedDocuments must use the same model so query and document vectors
// live in one space.
type Embedder interface {
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
	EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error)
}
