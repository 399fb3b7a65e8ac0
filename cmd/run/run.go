// Package run implements the run command: the full daily task as a single
// invocation, fetching the day's articles and generating the brief.
package run

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonesrussell/newsbrief/cmd/common"
	"github.com/jonesrussell/newsbrief/internal/articles"
	"github.com/jonesrussell/newsbrief/internal/brief"
	"github.com/jonesrussell/newsbrief/internal/feed"
	"github.com/jonesrussell/newsbrief/internal/generator"
	"github.com/jonesrussell/newsbrief/internal/metrics"
	"github.com/jonesrussell/newsbrief/internal/summarizer"
)

// Command returns the run command for use in the root command.
func Command() *cobra.Command {
	var (
		date   string
		apiKey string
		model  string
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Fetch today's articles and generate the brief",
		Long: `Run the full daily task once: fetch articles published on the date from
every configured feed source, persist them, and generate the daily brief.
A day with no articles skips the brief without error.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := common.NewCommandDeps()
			if err != nil {
				return fmt.Errorf("failed to initialize dependencies: %w", err)
			}
			common.ApplySummarizerOverrides(deps.Config, apiKey, model)

			key, loc, err := common.ResolveDate(date, deps.Config.Timezone)
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

			gen := generator.New(generator.Params{
				Articles:   articles.NewStore(deps.Config.Storage.ArticlesDir, deps.Logger),
				Briefs:     brief.NewStore(deps.Config.Storage.BriefsDir, deps.Logger),
				Summarizer: client,
				Fetcher:    feed.NewFetcher(deps.Config.Feed, deps.Logger, m),
				Sources:    sources,
				Location:   loc,
				Logger:     deps.Logger,
				Metrics:    m,
			})

			return gen.RunDaily(cmd.Context(), key)
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "date key (YYYYMMDD, default today)")
	cmd.Flags().StringVar(&apiKey, "api-key", "", "completion API key (overrides DEEPSEEK_API_KEY)")
	cmd.Flags().StringVar(&model, "model", "", "completion model (overrides SUMMARY_MODEL)")

	return cmd
}
