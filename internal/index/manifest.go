// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package index

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.yaml.in/yaml/v3"
)

const manifestFile = "manifest.yaml"

// Manifest records what an ingest run put into the index, including the
// embedding model so a mismatched query-time model can be spotted.
type Manifest struct {
	GeneratedAt    time.Time       `yaml:"generated_at"`
	EmbeddingModel string          `yaml:"embedding_model"`
	Documents      []ManifestEntry `yaml:"documents"`
}

// ManifestEntry describes one ingested source document.
type ManifestEntry struct {
	Source       string `yaml:"source"`
	Chunks       int    `yaml:"chunks"`
	Year         int    `yaml:"year,omitempty"`
	DocumentType string `yaml:"document_type,omitempty"`
}

// WriteManifest writes the manifest YAML into indexDir.
func WriteManifest(indexDir string, m Manifest) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshaling manifest: %w", err)
	}
	path := filepath.Join(indexDir, manifestFile)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing manifest: %w", err)
	}
	return nil
}

// ReadManifest loads the manifest from indexDir. A missing manifest is
// not an error; it returns a zero Manifest and false.
func ReadManifest(indexDir string) (Manifest, bool, error) {
	data, err := os.ReadFile(filepath.Join(indexDir, manifestFile))
	if err != nil {
		if os.IsNotExist(err) {
			return Manifest{}, false, nil
		}
		return Manifest{}, false, fmt.Errorf("reading manifest: %w", err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return Manifest{}, false, fmt.Errorf("parsing manifest: %w", err)
	}
	return m, true, nil
}
