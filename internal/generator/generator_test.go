package generator_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/newsbrief/internal/articles"
	"github.com/jonesrussell/newsbrief/internal/brief"
	"github.com/jonesrussell/newsbrief/internal/config"
	"github.com/jonesrussell/newsbrief/internal/datekey"
	"github.com/jonesrussell/newsbrief/internal/feed"
	"github.com/jonesrussell/newsbrief/internal/generator"
	"github.com/jonesrussell/newsbrief/internal/logger"
	"github.com/jonesrussell/newsbrief/internal/metrics"
	"github.com/jonesrussell/newsbrief/internal/summarizer"
)

const testKey = datekey.Key("20250314")

// stubSummarizer returns a fixed brief or error and records its input.
type stubSummarizer struct {
	content string
	err     error
	records []json.RawMessage
	calls   int
}

var _ summarizer.Interface = (*stubSummarizer)(nil)

func (s *stubSummarizer) Summarize(_ context.Context, records []json.RawMessage) (string, error) {
	s.calls++
	s.records = records
	return s.content, s.err
}

func newTestGenerator(t *testing.T, stub *stubSummarizer) (*generator.Generator, string, string) {
	t.Helper()

	articlesDir := filepath.Join(t.TempDir(), "articles")
	briefsDir := filepath.Join(t.TempDir(), "dailybrief")

	gen := generator.New(generator.Params{
		Articles:   articles.NewStore(articlesDir, logger.NewNoOp()),
		Briefs:     brief.NewStore(briefsDir, logger.NewNoOp()),
		Summarizer: stub,
		Logger:     logger.NewNoOp(),
	})
	return gen, articlesDir, briefsDir
}

func writeArticles(t *testing.T, dir, content string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "20250314.json"), []byte(content), 0o644))
}

func TestGenerate_WritesBriefVerbatim(t *testing.T) {
	t.Parallel()

	stub := &stubSummarizer{content: "# 每日简报\n\nMarkdown body, untouched.\n"}
	gen, articlesDir, briefsDir := newTestGenerator(t, stub)
	writeArticles(t, articlesDir, `[{"title":"a"},{"title":"b"}]`)

	require.NoError(t, gen.Generate(context.Background(), testKey))

	data, err := os.ReadFile(filepath.Join(briefsDir, "20250314.md"))
	require.NoError(t, err)
	assert.Equal(t, stub.content, string(data))
	assert.Len(t, stub.records, 2, "summarizer receives every loaded record")
}

func TestGenerate_RerunOverwrites(t *testing.T) {
	t.Parallel()

	stub := &stubSummarizer{content: "first run"}
	gen, articlesDir, briefsDir := newTestGenerator(t, stub)
	writeArticles(t, articlesDir, `[{"title":"a"}]`)

	require.NoError(t, gen.Generate(context.Background(), testKey))

	stub.content = "second run"
	require.NoError(t, gen.Generate(context.Background(), testKey))

	data, err := os.ReadFile(filepath.Join(briefsDir, "20250314.md"))
	require.NoError(t, err)
	assert.Equal(t, "second run", string(data))
}

func TestGenerate_MissingArticleFile(t *testing.T) {
	t.Parallel()

	stub := &stubSummarizer{content: "unused"}
	gen, _, briefsDir := newTestGenerator(t, stub)

	err := gen.Generate(context.Background(), testKey)
	require.ErrorIs(t, err, articles.ErrNotFound)
	assert.Zero(t, stub.calls, "no summarization without articles")

	_, statErr := os.Stat(filepath.Join(briefsDir, "20250314.md"))
	assert.True(t, os.IsNotExist(statErr), "no brief file on failure")
}

func TestGenerate_SummarizerFailure(t *testing.T) {
	t.Parallel()

	wantErr := errors.New("upstream unavailable")
	stub := &stubSummarizer{err: wantErr}
	gen, articlesDir, briefsDir := newTestGenerator(t, stub)
	writeArticles(t, articlesDir, `[{"title":"a"}]`)

	err := gen.Generate(context.Background(), testKey)
	require.ErrorIs(t, err, wantErr)

	_, statErr := os.Stat(filepath.Join(briefsDir, "20250314.md"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestRunDaily_SaveFailureCountsSaveStage(t *testing.T) {
	t.Parallel()

	const rss = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0"><channel><title>feed</title>
<item><title>story</title><link>https://example.com/s</link>
<pubDate>Fri, 14 Mar 2025 12:00:00 +0000</pubDate>
<description>body</description></item>
</channel></rss>`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = w.Write([]byte(rss))
	}))
	defer server.Close()

	// A regular file where the articles directory should be makes Save fail
	// after the fetch itself succeeded.
	articlesDir := filepath.Join(t.TempDir(), "articles")
	require.NoError(t, os.WriteFile(articlesDir, []byte("not a directory"), 0o644))

	m := metrics.New()
	stub := &stubSummarizer{content: "unused"}
	gen := generator.New(generator.Params{
		Articles:   articles.NewStore(articlesDir, logger.NewNoOp()),
		Briefs:     brief.NewStore(filepath.Join(t.TempDir(), "dailybrief"), logger.NewNoOp()),
		Summarizer: stub,
		Fetcher:    feed.NewFetcher(config.FeedConfig{RequestTimeout: 5 * time.Second}, logger.NewNoOp(), m),
		Sources:    []feed.Source{{Name: "test", URL: server.URL}},
		Location:   time.UTC,
		Logger:     logger.NewNoOp(),
		Metrics:    m,
	})

	err := gen.RunDaily(context.Background(), testKey)
	require.Error(t, err)
	assert.Zero(t, stub.calls, "no summarization without persisted articles")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body := rec.Body.String()
	assert.Contains(t, body, `newsbrief_brief_failures_total{stage="save"} 1`)
	assert.NotContains(t, body, `stage="fetch"`)
}
