package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/taskrevolution/ttr/internal/clock"
	"github.com/taskrevolution/ttr/internal/context"
	"github.com/taskrevolution/ttr/internal/lock"
	"github.com/taskrevolution/ttr/internal/repo"
	"github.com/taskrevolution/ttr/internal/schedule"
	"github.com/taskrevolution/ttr/internal/usecase"
)

var (
	linkCompanyCode string
	linkProjectCode string
)

var linkCmd = &cobra.Command{
	Use:   "link <from-code> <to-code>",
	Short: "Add from-code as a predecessor of to-code",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := resolveContext(context.Overrides{Company: linkCompanyCode, Project: linkProjectCode})
		if err != nil {
			return err
		}
		if ctx.CompanyCode == "" || ctx.ProjectCode == "" {
			return fmt.Errorf("link: no project in scope (use --company/--project)")
		}
		return withLock(ctx, lock.Exclusive, "link", func(reg *repo.Registry) error {
			env := usecase.Env{Reg: reg, Clock: clock.Real{}}
			result, err := env.LinkTasks(ctx.CompanyCode, ctx.ProjectCode, args[0], args[1])
			if err != nil {
				return err
			}
			if !quiet {
				fmt.Printf("Linked %s -> %s\n", args[0], args[1])
				printPropagation(result.PropagatedChanges)
			}
			return nil
		})
	},
}

var unlinkCmd = &cobra.Command{
	Use:   "unlink <from-code> <to-code>",
	Short: "Remove from-code as a predecessor of to-code",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := resolveContext(context.Overrides{Company: linkCompanyCode, Project: linkProjectCode})
		if err != nil {
			return err
		}
		if ctx.CompanyCode == "" || ctx.ProjectCode == "" {
			return fmt.Errorf("unlink: no project in scope (use --company/--project)")
		}
		return withLock(ctx, lock.Exclusive, "unlink", func(reg *repo.Registry) error {
			env := usecase.Env{Reg: reg, Clock: clock.Real{}}
			result, err := env.UnlinkTasks(ctx.CompanyCode, ctx.ProjectCode, args[0], args[1])
			if err != nil {
				return err
			}
			if !quiet {
				fmt.Printf("Unlinked %s -> %s\n", args[0], args[1])
				printPropagation(result.PropagatedChanges)
			}
			return nil
		})
	},
}

// printPropagation reports every successor whose computed window moved as
// a result of a link/unlink/date-patch (§4.G.4 "propagated date changes").
func printPropagation(changes []schedule.Result) {
	for _, c := range changes {
		if c.Changed {
			fmt.Printf("  propagated: %s -> %s\n", c.Task.Code, c.Window.EarliestFinish.Format(dateLayout))
		}
	}
}

func init() {
	linkCmd.Flags().StringVar(&linkCompanyCode, "company", "", "company code (overrides ambient scope)")
	linkCmd.Flags().StringVar(&linkProjectCode, "project", "", "project code (overrides ambient scope)")
	unlinkCmd.Flags().StringVar(&linkCompanyCode, "company", "", "company code (overrides ambient scope)")
	unlinkCmd.Flags().StringVar(&linkProjectCode, "project", "", "project code (overrides ambient scope)")
	rootCmd.AddCommand(linkCmd, unlinkCmd)
}
