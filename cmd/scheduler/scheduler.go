// Package scheduler implements the scheduler command: the long-running daily
// service that fetches and summarizes on a cron schedule while serving the
// HTTP endpoints.
package scheduler

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonesrussell/newsbrief/cmd/common"
	"github.com/jonesrussell/newsbrief/internal/articles"
	"github.com/jonesrussell/newsbrief/internal/brief"
	"github.com/jonesrussell/newsbrief/internal/datekey"
	"github.com/jonesrussell/newsbrief/internal/feed"
	"github.com/jonesrussell/newsbrief/internal/generator"
	"github.com/jonesrussell/newsbrief/internal/logger"
	"github.com/jonesrussell/newsbrief/internal/metrics"
	"github.com/jonesrussell/newsbrief/internal/scheduler"
	"github.com/jonesrussell/newsbrief/internal/server"
	"github.com/jonesrussell/newsbrief/internal/summarizer"
)

const errorChannelBufferSize = 1

// Command returns the scheduler command for use in the root command.
func Command() *cobra.Command {
	return &cobra.Command{
		Use:   "scheduler",
		Short: "Run the daily brief service",
		Long: `Run the daily brief service: fetch and summarize once immediately, then
on every scheduled tick, while serving health, metrics, and brief endpoints
over HTTP. The service runs continuously until interrupted with Ctrl+C.`,
		RunE: runScheduler,
	}
}

// runScheduler executes the scheduler command.
func runScheduler(cmd *cobra.Command, _ []string) error {
	deps, err := common.NewCommandDeps()
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}

	loc, err := datekey.LoadLocation(deps.Config.Timezone)
	if err != nil {
		return err
	}

	sources, err := feed.LoadSources(deps.Config.Feed)
	if err != nil {
		return err
	}

	m := metrics.New()
	client, err := summarizer.NewClient(deps.Config.Summarizer, deps.Logger, m)
	if err != nil {
		deps.Logger.Error("Failed to create summarizer client", "error", err)
		return err
	}

	briefs := brief.NewStore(deps.Config.Storage.BriefsDir, deps.Logger)
	gen := generator.New(generator.Params{
		Articles:   articles.NewStore(deps.Config.Storage.ArticlesDir, deps.Logger),
		Briefs:     briefs,
		Summarizer: client,
		Fetcher:    feed.NewFetcher(deps.Config.Feed, deps.Logger, m),
		Sources:    sources,
		Location:   loc,
		Logger:     deps.Logger,
		Metrics:    m,
	})

	task := dailyTask(gen, loc, deps.Logger)
	schedulerService, err := scheduler.New(deps.Config.Schedule.Cron, loc, task, deps.Logger)
	if err != nil {
		return err
	}

	httpServer := server.New(deps.Config.Server, briefs, m, deps.Logger, deps.Config.App.Debug)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if next, nextErr := schedulerService.NextRun(time.Now()); nextErr == nil {
		deps.Logger.Info("Next scheduled run", "at", next.Format(time.RFC3339))
	}

	serverErr := make(chan error, errorChannelBufferSize)
	go func() {
		serverErr <- httpServer.Start(ctx)
	}()

	schedulerErr := make(chan error, errorChannelBufferSize)
	go func() {
		schedulerErr <- schedulerService.Start(ctx)
	}()

	deps.Logger.Info("Daily brief service running, waiting for interrupt signal")
	return awaitShutdown(stop, serverErr, schedulerErr, deps.Logger)
}

// awaitShutdown waits for either service to exit, cancels the shared context,
// and drains the other goroutine so graceful shutdown completes before the
// process returns.
func awaitShutdown(
	stop context.CancelFunc,
	serverErr <-chan error,
	schedulerErr <-chan error,
	log logger.Interface,
) error {
	select {
	case err := <-serverErr:
		stop()
		<-schedulerErr
		if err != nil {
			log.Error("HTTP server error", "error", err)
			return fmt.Errorf("http server: %w", err)
		}
	case err := <-schedulerErr:
		stop()
		if serveErr := <-serverErr; serveErr != nil {
			log.Error("HTTP server error", "error", serveErr)
			return fmt.Errorf("http server: %w", serveErr)
		}
		if err != nil {
			log.Error("Scheduler error", "error", err)
			return fmt.Errorf("scheduler: %w", err)
		}
	}

	log.Info("Daily brief service stopped")
	return nil
}

// dailyTask builds the scheduled unit of work: run the full pipeline for
// whatever "today" is at fire time. A failed run is logged and the schedule
// keeps going; the next tick gets a fresh attempt.
func dailyTask(gen *generator.Generator, loc *time.Location, log logger.Interface) scheduler.Task {
	return func(ctx context.Context) {
		key := datekey.Today(loc)
		if err := gen.RunDaily(ctx, key); err != nil {
			log.Error("Daily run failed", "date", key.String(), "error", err)
		}
	}
}
