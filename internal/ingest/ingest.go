// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ingest

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/pdiddy/handover-engine/internal/index"
	"github.com/pdiddy/handover-engine/internal/llm"
	"github.com/pdiddy/handover-engine/pkg/types"
)

// Index is the subset of the vector store the ingester writes to.
type Index interface {
	ReplaceSource(ctx context.Context, source string, chunks []types.Chunk, vectors [][]float32) error
}

// Summary holds counts from a batch ingest run.
type Summary struct {
	Indexed int
	Skipped int
	Failed  int
}

// Total returns the number of files considered.
func (s Summary) Total() int {
	return s.Indexed + s.Skipped + s.Failed
}

// HasFailures reports whether any file failed to ingest.
func (s Summary) HasFailures() bool {
	return s.Failed > 0
}

// IngestDir loads every supported document in cfg.DocsDir, chunks and
// embeds it, and replaces its rows in the index. Unsupported files are
// skipped and per-file failures are counted rather than aborting the
// run. Progress lines are written to w. On completion the ingest
// manifest is written to retrCfg.IndexDir.
func IngestDir(ctx context.Context, store Index, embedder llm.Embedder, cfg types.IngestConfig, retrCfg types.RetrievalConfig, w io.Writer) (Summary, error) {
	entries, err := os.ReadDir(cfg.DocsDir)
	if err != nil {
		return Summary{}, fmt.Errorf("reading docs directory %s: %w", cfg.DocsDir, err)
	}

	var (
		summary  Summary
		manifest = index.Manifest{
			GeneratedAt:    time.Now(),
			EmbeddingModel: retrCfg.EmbeddingModel,
		}
	)

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") || !supportedExts[strings.ToLower(filepath.Ext(name))] {
			fmt.Fprintf(w, "skipped %s\n", name)
			summary.Skipped++
			continue
		}

		chunks, err := loadAndChunk(filepath.Join(cfg.DocsDir, name), cfg)
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", name, err)
			summary.Failed++
			continue
		}

		texts := make([]string, len(chunks))
		for i, c := range chunks {
			texts[i] = c.Content
		}

		vectors, err := embedder.EmbedDocuments(ctx, texts)
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", name, err)
			summary.Failed++
			continue
		}

		if err := store.ReplaceSource(ctx, name, chunks, vectors); err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", name, err)
			summary.Failed++
			continue
		}

		fmt.Fprintf(w, "indexed %s (%d chunks)\n", name, len(chunks))
		summary.Indexed++
		manifest.Documents = append(manifest.Documents, index.ManifestEntry{
			Source:       name,
			Chunks:       len(chunks),
			Year:         inferYear(name),
			DocumentType: inferDocumentType(name),
		})
	}

	sort.Slice(manifest.Documents, func(i, j int) bool {
		return manifest.Documents[i].Source < manifest.Documents[j].Source
	})

	if err := index.WriteManifest(retrCfg.IndexDir, manifest); err != nil {
		return summary, err
	}
	return summary, nil
}

// loadAndChunk loads one file and returns its chunks with metadata.
func loadAndChunk(path string, cfg types.IngestConfig) ([]types.Chunk, error) {
	pages, err := loadDocument(path)
	if err != nil {
		return nil, err
	}

	name := filepath.Base(path)
	meta := types.ChunkMetadata{
		Source:       name,
		Year:         inferYear(name),
		DocumentType: inferDocumentType(name),
	}

	var chunks []types.Chunk
	for _, p := range pages {
		for _, text := range splitText(p.text, cfg.ChunkSize, cfg.ChunkOverlap) {
			m := meta
			m.Page = p.page
			chunks = append(chunks, types.Chunk{Content: text, Metadata: m})
		}
	}

	if len(chunks) == 0 {
		return nil, fmt.Errorf("%s: no chunks produced", name)
	}
	return chunks, nil
}
