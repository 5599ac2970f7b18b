package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/taskrevolution/ttr/internal/build"
	"github.com/taskrevolution/ttr/internal/context"
	"github.com/taskrevolution/ttr/internal/lock"
	"github.com/taskrevolution/ttr/internal/repo"
)

var (
	buildOutDir      string
	buildConcurrency int
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Render the workspace into a navigable static HTML site",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := resolveContext(context.Overrides{})
		if err != nil {
			return err
		}
		return withLock(ctx, lock.Shared, "build", func(reg *repo.Registry) error {
			report, err := build.Build(reg, build.Options{OutDir: buildOutDir, Concurrency: buildConcurrency})
			if err != nil {
				return err
			}
			if !quiet {
				fmt.Printf("Wrote %d pages to %s\n", report.PagesWritten, report.OutDir)
			}
			return nil
		})
	},
}

func init() {
	buildCmd.Flags().StringVar(&buildOutDir, "out", "site", "output directory for the rendered site")
	buildCmd.Flags().IntVar(&buildConcurrency, "concurrency", 0, "concurrent page renders (default 4)")
	rootCmd.AddCommand(buildCmd)
}
