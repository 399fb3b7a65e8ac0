// Package feed fetches the day's articles from the configured RSS sources.
package feed

import (
	"context"
	"fmt"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/jonesrussell/newsbrief/internal/config"
	"github.com/jonesrussell/newsbrief/internal/datekey"
	"github.com/jonesrussell/newsbrief/internal/logger"
	"github.com/jonesrussell/newsbrief/internal/metrics"
)

// Article is one fetched article record. This is the shape written into the
// day's article file; downstream stages treat the file as opaque JSON.
type Article struct {
	Title     string `json:"title"`
	Published string `json:"published"`
	Content   string `json:"content"`
	Link      string `json:"link"`
}

// Fetcher pulls same-day articles from RSS sources.
type Fetcher struct {
	timeout   time.Duration
	userAgent string
	logger    logger.Interface
	metrics   *metrics.Metrics
}

// NewFetcher creates a fetcher from the feed configuration.
func NewFetcher(cfg config.FeedConfig, log logger.Interface, m *metrics.Metrics) *Fetcher {
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = config.DefaultFeedTimeout
	}
	return &Fetcher{
		timeout:   timeout,
		userAgent: cfg.UserAgent,
		logger:    log.WithComponent("feed"),
		metrics:   m,
	}
}

// FetchDay fetches one source and keeps the entries published on the key's
// date as observed in loc. Entries with no parseable publication time are
// skipped with a warning.
func (f *Fetcher) FetchDay(
	ctx context.Context,
	src Source,
	key datekey.Key,
	loc *time.Location,
) ([]Article, error) {
	parser := gofeed.NewParser()
	if ua := src.UserAgent; ua != "" {
		parser.UserAgent = ua
	} else if f.userAgent != "" {
		parser.UserAgent = f.userAgent
	}

	fetchCtx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	parsed, err := parser.ParseURLWithContext(src.URL, fetchCtx)
	if err != nil {
		return nil, fmt.Errorf("fetch feed %s: %w", src.Name, err)
	}

	var articles []Article
	for _, item := range parsed.Items {
		published := item.PublishedParsed
		if published == nil {
			published = item.UpdatedParsed
		}
		if published == nil {
			f.logger.Warn("Skipping entry with no publication time",
				"source", src.Name,
				"link", item.Link,
			)
			continue
		}
		if datekey.ForTime(*published, loc) != key {
			continue
		}

		articles = append(articles, Article{
			Title:     item.Title,
			Published: item.Published,
			Content:   itemContent(item),
			Link:      item.Link,
		})
		f.logger.Info("Found article for today", "source", src.Name, "title", item.Title)
	}

	return articles, nil
}

// FetchAll fetches every source, concatenating the same-day articles in
// source order. A failing source is logged and skipped; the fetch as a whole
// fails only when every source fails.
func (f *Fetcher) FetchAll(
	ctx context.Context,
	sources []Source,
	key datekey.Key,
	loc *time.Location,
) ([]Article, error) {
	if len(sources) == 0 {
		return nil, ErrNoSources
	}

	var (
		articles []Article
		failures int
		lastErr  error
	)
	for _, src := range sources {
		fetched, err := f.FetchDay(ctx, src, key, loc)
		if err != nil {
			f.logger.Error("Feed fetch failed", "source", src.Name, "error", err)
			failures++
			lastErr = err
			continue
		}
		articles = append(articles, fetched...)
	}

	if failures == len(sources) {
		return nil, fmt.Errorf("all %d feed sources failed: %w", failures, lastErr)
	}

	f.metrics.AddArticlesFetched(len(articles))
	f.logger.Info("Feed fetch complete",
		"sources", len(sources),
		"articles", len(articles),
		"date", key.String(),
	)
	return articles, nil
}

// itemContent extracts the fullest available content for a feed entry,
// preferring the content body over the summary.
func itemContent(item *gofeed.Item) string {
	if item.Content != "" {
		return item.Content
	}
	return item.Description
}
