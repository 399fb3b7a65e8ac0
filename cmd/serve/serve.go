// Package serve implements the serve command: the HTTP endpoints without the
// cron schedule, for deployments where fetching runs elsewhere.
package serve

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jonesrussell/newsbrief/cmd/common"
	"github.com/jonesrussell/newsbrief/internal/brief"
	"github.com/jonesrussell/newsbrief/internal/metrics"
	"github.com/jonesrussell/newsbrief/internal/server"
)

// Command returns the serve command for use in the root command.
func Command() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve health, metrics, and brief endpoints",
		Long: `Serve the HTTP endpoints: /health, /metrics, and /briefs/:date. No
scheduling or fetching happens; use the scheduler command for the full
service. The server runs until interrupted with Ctrl+C.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			deps, err := common.NewCommandDeps()
			if err != nil {
				return fmt.Errorf("failed to initialize dependencies: %w", err)
			}

			briefs := brief.NewStore(deps.Config.Storage.BriefsDir, deps.Logger)
			httpServer := server.New(
				deps.Config.Server,
				briefs,
				metrics.New(),
				deps.Logger,
				deps.Config.App.Debug,
			)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if err := httpServer.Start(ctx); err != nil {
				deps.Logger.Error("HTTP server error", "error", err)
				return err
			}

			deps.Logger.Info("Server stopped")
			return nil
		},
	}
}
