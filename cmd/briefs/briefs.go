// Package briefs implements the command-line interface for inspecting
// generated briefs. This file contains the implementation of the list command
// that displays the briefs on disk in a formatted table.
package briefs

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/jonesrussell/newsbrief/cmd/common"
	briefpkg "github.com/jonesrussell/newsbrief/internal/brief"
	"github.com/jonesrussell/newsbrief/internal/logger"
)

// Command returns the briefs command for use in the root command.
func Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "briefs",
		Short: "Inspect generated briefs",
	}
	cmd.AddCommand(listCommand())
	return cmd
}

// listCommand returns the briefs list subcommand.
func listCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List generated briefs",
		Long:  `Display the generated briefs on disk, newest first.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			deps, err := common.NewCommandDeps()
			if err != nil {
				return fmt.Errorf("failed to initialize dependencies: %w", err)
			}

			store := briefpkg.NewStore(deps.Config.Storage.BriefsDir, deps.Logger)
			renderer := NewTableRenderer(deps.Logger)

			infos, err := store.List()
			if err != nil {
				return fmt.Errorf("failed to list briefs: %w", err)
			}

			if len(infos) == 0 {
				deps.Logger.Info("No briefs generated yet")
				return nil
			}

			return renderer.RenderTable(infos)
		},
	}
}

// TableRenderer handles the display of brief data in a table format
type TableRenderer struct {
	logger logger.Interface
}

// NewTableRenderer creates a new TableRenderer instance
func NewTableRenderer(log logger.Interface) *TableRenderer {
	return &TableRenderer{
		logger: log,
	}
}

// RenderTable formats and displays the briefs in a table format
func (r *TableRenderer) RenderTable(infos []briefpkg.Info) error {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)

	t.AppendHeader(table.Row{"Date", "Path", "Size", "Modified"})

	// Newest first.
	for i := len(infos) - 1; i >= 0; i-- {
		info := infos[i]
		t.AppendRow(table.Row{
			info.Key.String(),
			info.Path,
			info.Size,
			info.Modified.Format("2006-01-02 15:04:05"),
		})
	}

	t.Render()
	return nil
}
