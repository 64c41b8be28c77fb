// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package retrieve runs similarity search for a question, applies
// metadata filters, and partitions the hits into template, example and
// related buckets.
package retrieve

import (
	"context"
	"fmt"
	"strings"

	"github.com/pdiddy/handover-engine/pkg/types"
)

const (
	defaultTopK  = 10
	maxResults   = 5
	maxPerBucket = 3
)

// Searcher is the similarity-search capability the agent consumes.
// Results are ordered nearest-first.
type Searcher interface {
	Search(ctx context.Context, query string, k int) ([]types.Chunk, error)
}

// Agent performs metadata-aware retrieval over a Searcher.
type Agent struct {
	index Searcher
	topK  int
}

// NewAgent returns an Agent requesting topK candidates per search.
// A non-positive topK uses the default of 10.
func NewAgent(index Searcher, topK int) *Agent {
	if topK <= 0 {
		topK = defaultTopK
	}
	return &Agent{index: index, topK: topK}
}

// Retrieve searches for the question, filters by the analyzed document
// type, and partitions the filtered set. A search failure is recovered:
// the returned Retrieval has all four collections empty and the error
// describes the cause.
func (a *Agent) Retrieve(ctx context.Context, question string, analysis types.Analysis) (types.Retrieval, error) {
	hits, err := a.index.Search(ctx, question, a.topK)
	if err != nil {
		return types.Retrieval{}, fmt.Errorf("similarity search: %w", err)
	}

	filtered := filterByDocumentType(hits, analysis.DocumentType)
	templates, examples, related := classify(filtered)

	return types.Retrieval{
		SearchResults: truncate(filtered, maxResults),
		Templates:     truncate(templates, maxPerBucket),
		Examples:      truncate(examples, maxPerBucket),
		Related:       truncate(related, maxPerBucket),
	}, nil
}

// filterByDocumentType keeps chunks whose document-type label or source
// contains docType, case-insensitively. A filter that would eliminate
// every candidate is skipped entirely: filters narrow but never starve
// the result set.
func filterByDocumentType(chunks []types.Chunk, docType string) []types.Chunk {
	if docType == "" {
		return chunks
	}

	needle := strings.ToLower(docType)
	var kept []types.Chunk
	for _, c := range chunks {
		if strings.Contains(strings.ToLower(c.Metadata.DocumentType), needle) ||
			strings.Contains(strings.ToLower(c.Metadata.Source), needle) {
			kept = append(kept, c)
		}
	}

	if len(kept) == 0 {
		return chunks
	}
	return kept
}

// templateMarkers and exampleMarkers are the source-identifier
// substrings that route a chunk into its bucket. Checked in order;
// first match wins, so a source naming both a template and an example
// counts as a template.
var (
	templateMarkers = []string{"template", "템플릿", "form", "양식"}
	exampleMarkers  = []string{"example", "예시", "case", "사례"}
)

// classify partitions chunks into templates, examples and related by
// inspecting each source identifier. The three buckets are mutually
// exclusive and together exhaustive.
func classify(chunks []types.Chunk) (templates, examples, related []types.Chunk) {
	for _, c := range chunks {
		source := strings.ToLower(c.Metadata.Source)
		switch {
		case containsAny(source, templateMarkers):
			templates = append(templates, c)
		case containsAny(source, exampleMarkers):
			examples = append(examples, c)
		default:
			related = append(related, c)
		}
	}
	return templates, examples, related
}

func containsAny(s string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}

func truncate(chunks []types.Chunk, n int) []types.Chunk {
	if len(chunks) > n {
		return chunks[:n]
	}
	return chunks
}
