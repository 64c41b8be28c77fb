// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// ChunkMetadata carries provenance attributes attached to a chunk
// during ingestion. Source is always set; Year and DocumentType are
// best-effort and may be zero.
type ChunkMetadata struct {
	// Source is the base name of the file the chunk was cut from
	// (e.g. "travel_request_form_2024.docx").
	Source string `json:"source" yaml:"source"`

	// Year is the document's publication year, or 0 when unknown.
	Year int `json:"year,omitempty" yaml:"year,omitempty"`

	// DocumentType is a free-form label such as "form" or "report".
	// Empty when no label could be inferred.
	DocumentType string `json:"document_type,omitempty" yaml:"document_type,omitempty"`

	// Page is the page number the chunk starts on, or 0 when the
	// source format has no pages.
	Page int `json:"page,omitempty" yaml:"page,omitempty"`
}

// Chunk is a bounded excerpt of a source document, the unit of
// retrieval. Chunks are produced by ingestion and read-only afterwards.
type Chunk struct {
	Content  string        `json:"content" yaml:"content"`
	Metadata ChunkMetadata `json:"metadata" yaml:"metadata"`
}

// ScoredChunk pairs a chunk with its cosine similarity score. Higher
// means closer; results are returned nearest-first.
type ScoredChunk struct {
	Chunk Chunk   `json:"chunk"`
	Score float64 `json:"score"`
}
