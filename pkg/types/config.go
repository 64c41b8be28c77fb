// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// AIConfig holds shared settings for components that call the
// generative AI API.
type AIConfig struct {
	// BaseURL is the OpenAI-compatible API endpoint
	// (default "https://api.upstage.ai/v1").
	BaseURL string `json:"base_url" yaml:"base_url"`

	// APIKey is the authentication key for the AI API.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// MaxRetries is the number of retry attempts for failed API calls
	// (default 3).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`

	// Timeout is the per-request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`
}

// AnalysisConfig holds settings for the intent analysis stage.
type AnalysisConfig struct {
	AIConfig `yaml:",inline"`

	// Model is the chat model used for classification
	// (e.g. "solar-1-mini-chat"). Called with temperature 0.
	Model string `json:"model" yaml:"model"`
}

// GenerationConfig holds settings for the answer generation stage.
type GenerationConfig struct {
	AIConfig `yaml:",inline"`

	// Model is the chat model used for answer prose (e.g. "solar-pro").
	Model string `json:"model" yaml:"model"`

	// Temperature controls variety in generated prose (default 0.3).
	Temperature float64 `json:"temperature" yaml:"temperature"`
}

// RetrievalConfig holds settings for the retrieval stage and the vector
// index it queries.
type RetrievalConfig struct {
	// IndexDir is the directory holding the vector index database and
	// the ingest manifest.
	IndexDir string `json:"index_dir" yaml:"index_dir"`

	// EmbeddingModel names the embedding model. It must match the model
	// the index was built with; both ingestion and retrieval receive it
	// from this one value.
	EmbeddingModel string `json:"embedding_model" yaml:"embedding_model"`

	// TopK is the number of candidates requested from the similarity
	// search before filtering (default 10).
	TopK int `json:"top_k" yaml:"top_k"`
}

// IngestConfig holds settings for the ingestion pipeline.
type IngestConfig struct {
	// DocsDir is the directory of source documents to ingest.
	DocsDir string `json:"docs_dir" yaml:"docs_dir"`

	// ChunkSize is the target chunk length in runes (default 1000).
	ChunkSize int `json:"chunk_size" yaml:"chunk_size"`

	// ChunkOverlap is the overlap between consecutive chunks in runes
	// (default 200).
	ChunkOverlap int `json:"chunk_overlap" yaml:"chunk_overlap"`
}

// ResultsConfig holds settings for result persistence.
type ResultsConfig struct {
	// OutputDir is the directory answer records are written to
	// (default "results").
	OutputDir string `json:"output_dir" yaml:"output_dir"`
}

// PipelineConfig groups all stage configurations.
type PipelineConfig struct {
	Analysis   AnalysisConfig   `json:"analysis" yaml:"analysis"`
	Generation GenerationConfig `json:"generation" yaml:"generation"`
	Retrieval  RetrievalConfig  `json:"retrieval" yaml:"retrieval"`
	Ingest     IngestConfig     `json:"ingest" yaml:"ingest"`
	Results    ResultsConfig    `json:"results" yaml:"results"`
}
