// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/pdiddy/handover-engine/internal/analyze"
	"github.com/pdiddy/handover-engine/internal/answer"
	"github.com/pdiddy/handover-engine/internal/index"
	"github.com/pdiddy/handover-engine/internal/llm"
	"github.com/pdiddy/handover-engine/internal/pipeline"
	"github.com/pdiddy/handover-engine/internal/results"
	"github.com/pdiddy/handover-engine/internal/retrieve"
	"github.com/pdiddy/handover-engine/internal/secrets"
	"github.com/pdiddy/handover-engine/internal/verify"
	"github.com/pdiddy/handover-engine/pkg/types"
)

func init() {
	viper.SetDefault("ai.base_url", "https://api.upstage.ai/v1")
	viper.SetDefault("ai.max_retries", 3)
	viper.SetDefault("ai.timeout", "60s")
	viper.SetDefault("analysis.model", "solar-1-mini-chat")
	viper.SetDefault("generation.model", "solar-pro")
	viper.SetDefault("generation.temperature", 0.3)
	viper.SetDefault("retrieval.index_dir", "index")
	viper.SetDefault("retrieval.embedding_model", "solar-embedding-1-large")
	viper.SetDefault("retrieval.top_k", 10)
	viper.SetDefault("ingest.docs_dir", "data")
	viper.SetDefault("ingest.chunk_size", 1000)
	viper.SetDefault("ingest.chunk_overlap", 200)
	viper.SetDefault("results.output_dir", "results")
}

// buildConfig assembles the pipeline configuration from viper. The
// embedding model name flows from one key into both ingestion and
// retrieval so the two can never diverge.
func buildConfig() types.PipelineConfig {
	ai := types.AIConfig{
		BaseURL:    viper.GetString("ai.base_url"),
		APIKey:     secrets.APIKey(viper.GetString("ai.api_key"), loadedSecrets),
		MaxRetries: viper.GetInt("ai.max_retries"),
		Timeout:    viper.GetDuration("ai.timeout"),
	}

	return types.PipelineConfig{
		Analysis: types.AnalysisConfig{
			AIConfig: ai,
			Model:    viper.GetString("analysis.model"),
		},
		Generation: types.GenerationConfig{
			AIConfig:    ai,
			Model:       viper.GetString("generation.model"),
			Temperature: viper.GetFloat64("generation.temperature"),
		},
		Retrieval: types.RetrievalConfig{
			IndexDir:       viper.GetString("retrieval.index_dir"),
			EmbeddingModel: viper.GetString("retrieval.embedding_model"),
			TopK:           viper.GetInt("retrieval.top_k"),
		},
		Ingest: types.IngestConfig{
			DocsDir:      viper.GetString("ingest.docs_dir"),
			ChunkSize:    viper.GetInt("ingest.chunk_size"),
			ChunkOverlap: viper.GetInt("ingest.chunk_overlap"),
		},
		Results: types.ResultsConfig{
			OutputDir: viper.GetString("results.output_dir"),
		},
	}
}

// newEmbedder builds the embedding client with the configured model.
func newEmbedder(cfg types.PipelineConfig) (*llm.EmbeddingClient, error) {
	return llm.NewEmbeddingClient(cfg.Analysis.AIConfig, cfg.Retrieval.EmbeddingModel)
}

// openStore builds the embedding client and opens the vector index.
func openStore(cfg types.PipelineConfig) (*index.Store, error) {
	embedder, err := newEmbedder(cfg)
	if err != nil {
		return nil, err
	}
	return index.NewStore(cfg.Retrieval, embedder)
}

// buildPipeline wires the four agents, the vector index, and (when
// withSaver is set) the result saver into a ready-to-run pipeline. The
// returned close function releases the index.
func buildPipeline(cfg types.PipelineConfig, withSaver bool) (*pipeline.Pipeline, func() error, error) {
	store, err := openStore(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("opening vector index: %w", err)
	}

	analysisModel, err := llm.NewClient(cfg.Analysis.AIConfig, cfg.Analysis.Model)
	if err != nil {
		store.Close()
		return nil, nil, err
	}

	generationModel, err := llm.NewClient(cfg.Generation.AIConfig, cfg.Generation.Model)
	if err != nil {
		store.Close()
		return nil, nil, err
	}

	opts := []pipeline.Option{pipeline.WithLogger(logger)}
	if withSaver {
		opts = append(opts, pipeline.WithSaver(results.NewSaver(cfg.Results)))
	}

	p := pipeline.New(
		analyze.NewAnalyzer(analysisModel),
		retrieve.NewAgent(store, cfg.Retrieval.TopK),
		answer.NewGenerator(generationModel, cfg.Generation.Temperature),
		verify.NewVerifier(),
		opts...,
	)
	return p, store.Close, nil
}

// warnStaleIndex surfaces an embedding-model mismatch between the
// current configuration and the manifest the index was built with.
func warnStaleIndex(cfg types.PipelineConfig) {
	m, ok, err := index.ReadManifest(cfg.Retrieval.IndexDir)
	if err != nil || !ok {
		return
	}
	if m.EmbeddingModel != "" && m.EmbeddingModel != cfg.Retrieval.EmbeddingModel {
		logger.Warn("index was built with a different embedding model; re-run ingest",
			"index_model", m.EmbeddingModel, "configured_model", cfg.Retrieval.EmbeddingModel)
	}
}
