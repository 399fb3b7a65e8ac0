// Package generator orchestrates the daily brief pipeline: load the day's
// articles, summarize them through the completion endpoint, persist the brief.
package generator

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jonesrussell/newsbrief/internal/articles"
	"github.com/jonesrussell/newsbrief/internal/brief"
	"github.com/jonesrussell/newsbrief/internal/datekey"
	"github.com/jonesrussell/newsbrief/internal/feed"
	"github.com/jonesrussell/newsbrief/internal/logger"
	"github.com/jonesrussell/newsbrief/internal/metrics"
	"github.com/jonesrussell/newsbrief/internal/summarizer"
)

// Params holds the generator dependencies.
type Params struct {
	Articles   *articles.Store
	Briefs     *brief.Store
	Summarizer summarizer.Interface
	// Fetcher, Sources, and Location are only needed by RunDaily.
	Fetcher  *feed.Fetcher
	Sources  []feed.Source
	Location *time.Location
	Logger   logger.Interface
	Metrics  *metrics.Metrics
}

// Generator runs the brief pipeline.
type Generator struct {
	articles   *articles.Store
	briefs     *brief.Store
	summarizer summarizer.Interface
	fetcher    *feed.Fetcher
	sources    []feed.Source
	location   *time.Location
	logger     logger.Interface
	metrics    *metrics.Metrics
}

// New creates a Generator.
func New(p Params) *Generator {
	return &Generator{
		articles:   p.Articles,
		briefs:     p.Briefs,
		summarizer: p.Summarizer,
		fetcher:    p.Fetcher,
		sources:    p.Sources,
		location:   p.Location,
		logger:     p.Logger.WithComponent("generator"),
		metrics:    p.Metrics,
	}
}

// Generate produces the brief for one date key: load articles, summarize,
// write. Each stage failure is logged with the stage named and returned
// wrapped; the caller decides the process exit code.
func (g *Generator) Generate(ctx context.Context, key datekey.Key) error {
	runLog := g.logger.WithRunID(uuid.NewString()).With("date", key.String())
	start := time.Now()

	records, err := g.articles.Load(key)
	if err != nil {
		g.metrics.BriefFailed(metrics.StageLoad)
		runLog.Error("Failed to load articles", "error", err)
		return fmt.Errorf("load articles for %s: %w", key, err)
	}

	runLog.Info("Generating daily brief", "articles", len(records))

	content, err := g.summarizer.Summarize(ctx, records)
	if err != nil {
		g.metrics.BriefFailed(metrics.StageSummarize)
		runLog.Error("Failed to generate summary", "error", err)
		return fmt.Errorf("summarize articles for %s: %w", key, err)
	}

	path, err := g.briefs.Write(key, content)
	if err != nil {
		g.metrics.BriefFailed(metrics.StageWrite)
		runLog.Error("Failed to write brief", "error", err)
		return fmt.Errorf("write brief for %s: %w", key, err)
	}

	g.metrics.BriefGenerated()
	runLog.Info("Daily brief complete",
		"path", path,
		"duration", time.Since(start),
	)
	return nil
}

// RunDaily runs the full daily task: fetch the day's articles from the
// configured sources, persist them, then generate the brief. A day with no
// articles is not an error; the brief is simply skipped.
func (g *Generator) RunDaily(ctx context.Context, key datekey.Key) error {
	fetched, err := g.fetcher.FetchAll(ctx, g.sources, key, g.location)
	if err != nil {
		g.metrics.BriefFailed(metrics.StageFetch)
		g.logger.Error("Failed to fetch articles", "date", key.String(), "error", err)
		return fmt.Errorf("fetch articles for %s: %w", key, err)
	}

	if len(fetched) == 0 {
		g.logger.Info("No articles today, skipping brief", "date", key.String())
		return nil
	}

	if _, err := g.articles.Save(key, fetched); err != nil {
		g.metrics.BriefFailed(metrics.StageSave)
		g.logger.Error("Failed to save articles", "date", key.String(), "error", err)
		return fmt.Errorf("save articles for %s: %w", key, err)
	}

	return g.Generate(ctx, key)
}
