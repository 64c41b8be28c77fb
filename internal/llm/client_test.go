// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package llm

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/schema"

	"github.com/pdiddy/handover-engine/pkg/types"
)

func TestMain(m *testing.M) {
	backoffBase = time.Millisecond
	os.Exit(m.Run())
}

// fakeModel scripts a sequence of GenerateContent outcomes.
type fakeModel struct {
	replies []string
	errs    []error
	calls   int

	lastMessages []llms.MessageContent
}

func (f *fakeModel) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	i := f.calls
	f.calls++
	f.lastMessages = messages

	if i < len(f.errs) && f.errs[i] != nil {
		return nil, f.errs[i]
	}
	reply := ""
	if i < len(f.replies) {
		reply = f.replies[i]
	}
	return &llms.ContentResponse{
		Choices: []*llms.ContentChoice{{Content: reply}},
	}, nil
}

func (f *fakeModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return "", errors.New("not implemented")
}

func TestCompleteSendsBothMessages(t *testing.T) {
	model := &fakeModel{replies: []string{"the answer"}}
	c := &Client{model: model, maxRetries: 3}

	got, err := c.Complete(context.Background(), "system prompt", "user prompt", 0.3)
	require.NoError(t, err)
	assert.Equal(t, "the answer", got)

	require.Len(t, model.lastMessages, 2)
	assert.Equal(t, schema.ChatMessageTypeSystem, model.lastMessages[0].Role)
	assert.Equal(t, schema.ChatMessageTypeHuman, model.lastMessages[1].Role)
}

func TestCompleteRetriesTransientFailure(t *testing.T) {
	model := &fakeModel{
		errs:    []error{errors.New("503"), errors.New("503"), nil},
		replies: []string{"", "", "recovered"},
	}
	c := &Client{model: model, maxRetries: 3}

	got, err := c.Complete(context.Background(), "s", "u", 0)
	require.NoError(t, err)
	assert.Equal(t, "recovered", got)
	assert.Equal(t, 3, model.calls)
}

func TestCompleteExhaustsRetries(t *testing.T) {
	boom := errors.New("connection refused")
	model := &fakeModel{errs: []error{boom, boom, boom}}
	c := &Client{model: model, maxRetries: 2}

	_, err := c.Complete(context.Background(), "s", "u", 0)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 3, model.calls)
}

func TestCompleteEmptyChoices(t *testing.T) {
	model := &emptyModel{}
	c := &Client{model: model, maxRetries: 0}

	_, err := c.Complete(context.Background(), "s", "u", 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty response")
}

type emptyModel struct{}

func (emptyModel) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	return &llms.ContentResponse{}, nil
}

func (emptyModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return "", errors.New("not implemented")
}

func TestWithRetryStopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	err := withRetry(ctx, 5, func() error {
		calls++
		return errors.New("always fails")
	})
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}

func TestWithRetryNoRetryOnSuccess(t *testing.T) {
	calls := 0
	err := withRetry(context.Background(), 5, func() error {
		calls++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestRetries(t *testing.T) {
	assert.Equal(t, 3, retries(types.AIConfig{}))
	assert.Equal(t, 3, retries(types.AIConfig{MaxRetries: -1}))
	assert.Equal(t, 5, retries(types.AIConfig{MaxRetries: 5}))
}
