package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/taskrevolution/ttr/internal/context"
	"github.com/taskrevolution/ttr/internal/lock"
	"github.com/taskrevolution/ttr/internal/repo"
	"github.com/taskrevolution/ttr/internal/search"
	"github.com/taskrevolution/ttr/internal/usecase"
)

var searchLimit int

var searchCmd = &cobra.Command{
	Use:     "search <query>",
	Aliases: []string{"query", "q"},
	Short:   "Fuzzy-search companies, projects, tasks, and resources by code or name",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := resolveContext(context.Overrides{})
		if err != nil {
			return err
		}
		return withLock(ctx, lock.Shared, "search", func(reg *repo.Registry) error {
			w, err := usecase.LoadWorld(reg)
			if err != nil {
				return err
			}
			results := search.Build(w).Query(args[0], searchLimit)

			if jsonOut || jsonlOut {
				return emitJSON(results)
			}

			tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "KIND\tPATH\tNAME\tSCORE")
			for _, r := range results {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%d\n", r.Kind, r.Path(), r.Name, r.Score)
			}
			return tw.Flush()
		})
	},
}

func init() {
	searchCmd.Flags().IntVar(&searchLimit, "limit", 20, "maximum number of results (0 for unbounded)")
	rootCmd.AddCommand(searchCmd)
}
