// Package brief implements the brief command: generate the daily brief for
// one date from already-fetched articles.
package brief

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonesrussell/newsbrief/cmd/common"
	articlespkg "github.com/jonesrussell/newsbrief/internal/articles"
	briefpkg "github.com/jonesrussell/newsbrief/internal/brief"
	"github.com/jonesrussell/newsbrief/internal/generator"
	"github.com/jonesrussell/newsbrief/internal/metrics"
	"github.com/jonesrussell/newsbrief/internal/summarizer"
)

// Command returns the brief command for use in the root command.
func Command() *cobra.Command {
	var (
		date   string
		apiKey string
		model  string
	)

	cmd := &cobra.Command{
		Use:   "brief",
		Short: "Generate the daily brief for a date",
		Long: `Generate the markdown daily brief for a date from its article file.

The date defaults to today in the configured timezone. The article file
<articles_dir>/<date>.json must already exist; use the fetch command (or an
external pipeline) to produce it.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := common.NewCommandDeps()
			if err != nil {
				return fmt.Errorf("failed to initialize dependencies: %w", err)
			}
			common.ApplySummarizerOverrides(deps.Config, apiKey, model)

			key, _, err := common.ResolveDate(date, deps.Config.Timezone)
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
				Articles:   articlespkg.NewStore(deps.Config.Storage.ArticlesDir, deps.Logger),
				Briefs:     briefpkg.NewStore(deps.Config.Storage.BriefsDir, deps.Logger),
				Summarizer: client,
				Logger:     deps.Logger,
				Metrics:    m,
			})

			if err := gen.Generate(cmd.Context(), key); err != nil {
				return err
			}

			deps.Logger.Info("Brief generation succeeded", "date", key.String())
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "date key (YYYYMMDD, default today)")
	cmd.Flags().StringVar(&apiKey, "api-key", "", "completion API key (overrides DEEPSEEK_API_KEY)")
	cmd.Flags().StringVar(&model, "model", "", "completion model (overrides SUMMARY_MODEL)")

	return cmd
}
