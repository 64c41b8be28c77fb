// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package retrieve

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/handover-engine/pkg/types"
)

// mockSearcher returns a fixed result set.
type mockSearcher struct {
	chunks []types.Chunk
	err    error
	lastK  int
}

func (m *mockSearcher) Search(ctx context.Context, query string, k int) ([]types.Chunk, error) {
	m.lastK = k
	return m.chunks, m.err
}

func chunk(source, docType string) types.Chunk {
	return types.Chunk{
		Content:  "content of " + source,
		Metadata: types.ChunkMetadata{Source: source, DocumentType: docType},
	}
}

func TestRetrievePartition(t *testing.T) {
	searcher := &mockSearcher{chunks: []types.Chunk{
		chunk("travel_request_template.docx", "template"),
		chunk("budget_report_example.pdf", "example"),
		chunk("procurement_guide.md", "guide"),
		chunk("expense_form.pdf", "form"),
		chunk("hr_contacts.txt", ""),
	}}
	agent := NewAgent(searcher, 10)

	got, err := agent.Retrieve(context.Background(), "travel request", types.Analysis{})
	require.NoError(t, err)

	assert.Equal(t, 10, searcher.lastK)
	assert.Len(t, got.SearchResults, 5)

	// Buckets are disjoint and together cover every candidate.
	assert.Len(t, got.Templates, 2)
	assert.Len(t, got.Examples, 1)
	assert.Len(t, got.Related, 2)

	assert.Equal(t, "travel_request_template.docx", got.Templates[0].Metadata.Source)
	assert.Equal(t, "expense_form.pdf", got.Templates[1].Metadata.Source)
	assert.Equal(t, "budget_report_example.pdf", got.Examples[0].Metadata.Source)
}

func TestRetrieveTemplateWinsOverExample(t *testing.T) {
	// A source naming both categories lands in the template bucket.
	searcher := &mockSearcher{chunks: []types.Chunk{
		chunk("report_template_example.docx", ""),
	}}
	agent := NewAgent(searcher, 10)

	got, err := agent.Retrieve(context.Background(), "report", types.Analysis{})
	require.NoError(t, err)
	assert.Len(t, got.Templates, 1)
	assert.Empty(t, got.Examples)
	assert.Empty(t, got.Related)
}

func TestRetrieveKoreanMarkers(t *testing.T) {
	searcher := &mockSearcher{chunks: []types.Chunk{
		chunk("출장신청서_양식.hwp", ""),
		chunk("보고서_예시.pdf", ""),
		chunk("조직도.pdf", ""),
	}}
	agent := NewAgent(searcher, 10)

	got, err := agent.Retrieve(context.Background(), "출장 신청", types.Analysis{})
	require.NoError(t, err)
	assert.Len(t, got.Templates, 1)
	assert.Len(t, got.Examples, 1)
	assert.Len(t, got.Related, 1)
}

func TestRetrieveTruncation(t *testing.T) {
	var chunks []types.Chunk
	for i := 0; i < 8; i++ {
		chunks = append(chunks, chunk(fmt.Sprintf("regulations_%d.pdf", i), ""))
	}
	for i := 0; i < 5; i++ {
		chunks = append(chunks, chunk(fmt.Sprintf("form_%d.docx", i), ""))
	}
	searcher := &mockSearcher{chunks: chunks}
	agent := NewAgent(searcher, 20)

	got, err := agent.Retrieve(context.Background(), "forms", types.Analysis{})
	require.NoError(t, err)

	assert.Len(t, got.SearchResults, 5)
	assert.Len(t, got.Templates, 3)
	assert.Len(t, got.Related, 3)
	assert.Empty(t, got.Examples)

	// Order within a bucket follows search order.
	assert.Equal(t, "form_0.docx", got.Templates[0].Metadata.Source)
	assert.Equal(t, "form_2.docx", got.Templates[2].Metadata.Source)
}

func TestRetrieveDocumentTypeFilter(t *testing.T) {
	searcher := &mockSearcher{chunks: []types.Chunk{
		chunk("travel_request_template.docx", "travel request form"),
		chunk("budget_report.pdf", "report"),
		chunk("travel_policy.md", ""),
	}}
	agent := NewAgent(searcher, 10)

	got, err := agent.Retrieve(context.Background(), "travel",
		types.Analysis{DocumentType: "travel"})
	require.NoError(t, err)

	// budget_report matches neither label nor source and is filtered out.
	require.Len(t, got.SearchResults, 2)
	assert.Equal(t, "travel_request_template.docx", got.SearchResults[0].Metadata.Source)
	assert.Equal(t, "travel_policy.md", got.SearchResults[1].Metadata.Source)
}

func TestRetrieveFilterNeverStarves(t *testing.T) {
	searcher := &mockSearcher{chunks: []types.Chunk{
		chunk("budget_report.pdf", "report"),
		chunk("org_chart.pdf", ""),
	}}
	agent := NewAgent(searcher, 10)

	// No candidate matches the analyzed type: the filter is skipped.
	got, err := agent.Retrieve(context.Background(), "vacation",
		types.Analysis{DocumentType: "vacation request"})
	require.NoError(t, err)
	assert.Len(t, got.SearchResults, 2)
}

func TestRetrieveSearchError(t *testing.T) {
	searcher := &mockSearcher{err: errors.New("index unavailable")}
	agent := NewAgent(searcher, 10)

	got, err := agent.Retrieve(context.Background(), "anything", types.Analysis{})
	require.Error(t, err)
	assert.Empty(t, got.SearchResults)
	assert.Empty(t, got.Templates)
	assert.Empty(t, got.Examples)
	assert.Empty(t, got.Related)
}

func TestNewAgentDefaultTopK(t *testing.T) {
	searcher := &mockSearcher{}
	agent := NewAgent(searcher, 0)

	_, err := agent.Retrieve(context.Background(), "q", types.Analysis{})
	require.NoError(t, err)
	assert.Equal(t, 10, searcher.lastK)
}
