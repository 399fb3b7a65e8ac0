package summarizer_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/newsbrief/internal/config"
	"github.com/jonesrussell/newsbrief/internal/logger"
	"github.com/jonesrussell/newsbrief/internal/summarizer"
)

func testRecords() []json.RawMessage {
	return []json.RawMessage{
		json.RawMessage(`{"title":"Fed holds rates","link":"https://example.com/fed"}`),
		json.RawMessage(`{"title":"芯片出口新规","link":"https://example.com/chips"}`),
	}
}

func newTestClient(t *testing.T, baseURL string) *summarizer.Client {
	t.Helper()

	client, err := summarizer.NewClient(config.SummarizerConfig{
		BaseURL:     baseURL,
		APIKey:      "test-key",
		Model:       "deepseek-chat",
		Temperature: 0.6,
		MaxTokens:   4096,
	}, logger.NewNoOp(), nil)
	require.NoError(t, err)
	return client
}

func completionResponse(content string) string {
	resp := map[string]any{
		"id":    "cmpl-1",
		"model": "deepseek-chat",
		"choices": []map[string]any{
			{"index": 0, "message": map[string]string{"role": "assistant", "content": content}},
		},
		"usage": map[string]int{"total_tokens": 321},
	}
	data, _ := json.Marshal(resp)
	return string(data)
}

func TestSummarize_ReturnsFirstChoice(t *testing.T) {
	t.Parallel()

	var gotBody summarizer.ChatCompletionRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_, _ = w.Write([]byte(completionResponse("# Daily Brief\n\ncontent")))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	text, err := client.Summarize(context.Background(), testRecords())
	require.NoError(t, err)
	assert.Equal(t, "# Daily Brief\n\ncontent", text)

	// One user message, fixed sampling parameters, streaming disabled.
	require.Len(t, gotBody.Messages, 1)
	assert.Equal(t, "user", gotBody.Messages[0].Role)
	assert.Equal(t, "deepseek-chat", gotBody.Model)
	assert.InDelta(t, 0.6, gotBody.Temperature, 1e-9)
	assert.Equal(t, 4096, gotBody.MaxTokens)
	assert.False(t, gotBody.Stream)
}

func TestSummarize_PromptCarriesArticleJSON(t *testing.T) {
	t.Parallel()

	prompt, err := summarizer.ComposePrompt(testRecords())
	require.NoError(t, err)

	// Instruction template first, serialized records after the data header.
	idx := strings.Index(prompt, "输入数据:")
	require.Positive(t, idx)
	assert.Contains(t, prompt[idx:], `"title": "Fed holds rates"`)
	assert.Contains(t, prompt[idx:], "芯片出口新规")
	assert.Less(t, strings.Index(prompt, "每日简报"), idx)
}

func TestSummarize_NonSuccessStatus(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":"rate limited"}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	_, err := client.Summarize(context.Background(), testRecords())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestSummarize_EmptyChoices(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"id":"cmpl-2","choices":[]}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	_, err := client.Summarize(context.Background(), testRecords())
	assert.ErrorIs(t, err, summarizer.ErrNoChoices)
}

func TestNewClient_MissingAPIKey(t *testing.T) {
	t.Parallel()

	var calls atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
	}))
	defer server.Close()

	_, err := summarizer.NewClient(config.SummarizerConfig{
		BaseURL: server.URL,
	}, logger.NewNoOp(), nil)
	require.ErrorIs(t, err, summarizer.ErrMissingAPIKey)
	assert.Zero(t, calls.Load(), "no network call may be attempted without a credential")
}
