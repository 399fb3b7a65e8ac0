// Package fetch implements the fetch command: pull the day's articles from
// the configured feed sources and persist them as the per-day article file.
package fetch

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonesrussell/newsbrief/cmd/common"
	"github.com/jonesrussell/newsbrief/internal/articles"
	"github.com/jonesrussell/newsbrief/internal/feed"
	"github.com/jonesrussell/newsbrief/internal/metrics"
)

// Command returns the fetch command for use in the root command.
func Command() *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Fetch the day's articles from the feed sources",
		Long: `Fetch articles published on a date from every configured feed source and
write them to <articles_dir>/<date>.json. A day with no matching articles
writes nothing.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := common.NewCommandDeps()
			if err != nil {
				return fmt.Errorf("failed to initialize dependencies: %w", err)
			}

			key, loc, err := common.ResolveDate(date, deps.Config.Timezone)
			if err != nil {
				return err
			}

			sources, err := feed.LoadSources(deps.Config.Feed)
			if err != nil {
				return err
			}

			m := metrics.New()
			fetcher := feed.NewFetcher(deps.Config.Feed, deps.Logger, m)

			fetched, err := fetcher.FetchAll(cmd.Context(), sources, key, loc)
			if err != nil {
				return err
			}
			if len(fetched) == 0 {
				deps.Logger.Info("No articles for date, nothing written", "date", key.String())
				return nil
			}

			store := articles.NewStore(deps.Config.Storage.ArticlesDir, deps.Logger)
			path, err := store.Save(key, fetched)
			if err != nil {
				return err
			}

			deps.Logger.Info("Articles saved",
				"date", key.String(),
				"articles", len(fetched),
				"path", path,
			)
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "date key (YYYYMMDD, default today)")

	return cmd
}
