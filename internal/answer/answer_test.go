// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package answer

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/handover-engine/pkg/types"
)

type mockChatModel struct {
	reply string
	err   error

	lastUser string
	lastTemp float64
}

func (m *mockChatModel) Complete(ctx context.Context, system, user string, temperature float64) (string, error) {
	m.lastUser = user
	m.lastTemp = temperature
	return m.reply, m.err
}

func TestGenerate(t *testing.T) {
	model := &mockChatModel{
		reply: "📌 Summary: use the standard form.\n📝 Details: fill in all fields.\n💡 Tips: keep a copy.",
	}
	g := NewGenerator(model, 0.3)

	retrieval := types.Retrieval{
		Templates: []types.Chunk{{
			Content:  "travel request form v3",
			Metadata: types.ChunkMetadata{Source: "travel_request_template.docx"},
		}},
	}
	analysis := types.Analysis{Intent: types.IntentTemplateLookup, DocumentType: "travel request", Urgency: types.UrgencyNormal}

	draft, err := g.Generate(context.Background(), "where is the travel form?", analysis, retrieval)
	require.NoError(t, err)

	assert.Equal(t, model.reply, draft.Answer)
	assert.Equal(t, "use the standard form.", draft.Summary)
	assert.Equal(t, "fill in all fields.", draft.Details)
	assert.Equal(t, "keep a copy.", draft.Tips)
	assert.InDelta(t, 0.3, model.lastTemp, 1e-9)

	// The prompt carries the question, classification and the bucket
	// contents; the empty buckets render as "none".
	assert.Contains(t, model.lastUser, "where is the travel form?")
	assert.Contains(t, model.lastUser, "template_lookup")
	assert.Contains(t, model.lastUser, "travel_request_template.docx")
	assert.Contains(t, model.lastUser, "[Examples]\nnone")
	assert.Contains(t, model.lastUser, "[Related documents]\nnone")
}

func TestGenerateModelError(t *testing.T) {
	model := &mockChatModel{err: errors.New("rate limited")}
	g := NewGenerator(model, 0.3)

	draft, err := g.Generate(context.Background(), "q", types.Analysis{}, types.Retrieval{})
	require.Error(t, err)
	assert.Equal(t, Apology, draft.Answer)
	assert.Equal(t, ErrorSummary, draft.Summary)
	assert.Empty(t, draft.Details)
	assert.Empty(t, draft.Tips)
}

func TestGenerateUnstructuredReply(t *testing.T) {
	// A reply without markers is kept verbatim with empty sections.
	model := &mockChatModel{reply: "Just ask the finance team directly."}
	g := NewGenerator(model, 0.3)

	draft, err := g.Generate(context.Background(), "q", types.Analysis{}, types.Retrieval{})
	require.NoError(t, err)
	assert.Equal(t, "Just ask the finance team directly.", draft.Answer)
	assert.Empty(t, draft.Summary)
	assert.Empty(t, draft.Details)
	assert.Empty(t, draft.Tips)
}

func TestNewGeneratorDefaultTemperature(t *testing.T) {
	model := &mockChatModel{reply: "ok"}
	g := NewGenerator(model, 0)

	_, err := g.Generate(context.Background(), "q", types.Analysis{}, types.Retrieval{})
	require.NoError(t, err)
	assert.InDelta(t, defaultTemperature, model.lastTemp, 1e-9)
}

func TestFormatChunks(t *testing.T) {
	t.Run("empty bucket", func(t *testing.T) {
		assert.Equal(t, "none", formatChunks(nil))
	})

	t.Run("numbered entries", func(t *testing.T) {
		got := formatChunks([]types.Chunk{
			{Content: "first", Metadata: types.ChunkMetadata{Source: "a.pdf"}},
			{Content: "second", Metadata: types.ChunkMetadata{Source: "b.pdf"}},
		})
		assert.Contains(t, got, "1. source: a.pdf\ncontent: first")
		assert.Contains(t, got, "2. source: b.pdf\ncontent: second")
	})

	t.Run("long content truncated by runes", func(t *testing.T) {
		long := strings.Repeat("가", 600)
		got := formatChunks([]types.Chunk{
			{Content: long, Metadata: types.ChunkMetadata{Source: "long.pdf"}},
		})
		assert.Contains(t, got, strings.Repeat("가", 500)+"...")
		assert.NotContains(t, got, strings.Repeat("가", 501))
	})

	t.Run("short content kept whole", func(t *testing.T) {
		got := formatChunks([]types.Chunk{
			{Content: "short", Metadata: types.ChunkMetadata{Source: "s.pdf"}},
		})
		assert.NotContains(t, got, "...")
	})
}
