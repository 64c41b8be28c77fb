// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package index

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManifestRoundTrip(t *testing.T) {
	dir := t.TempDir()

	in := Manifest{
		GeneratedAt:    time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC),
		EmbeddingModel: "solar-embedding-1-large",
		Documents: []ManifestEntry{
			{Source: "a_form_2023.txt", Chunks: 4, Year: 2023, DocumentType: "form"},
			{Source: "b_guide.txt", Chunks: 2},
		},
	}
	require.NoError(t, WriteManifest(dir, in))

	got, ok, err := ReadManifest(dir)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, in.EmbeddingModel, got.EmbeddingModel)
	assert.Equal(t, in.Documents, got.Documents)
	assert.True(t, in.GeneratedAt.Equal(got.GeneratedAt))
}

func TestReadManifestMissing(t *testing.T) {
	got, ok, err := ReadManifest(t.TempDir())
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Zero(t, got)
}
