package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/taskrevolution/ttr/internal/clock"
	"github.com/taskrevolution/ttr/internal/context"
	"github.com/taskrevolution/ttr/internal/lock"
	"github.com/taskrevolution/ttr/internal/repo"
	"github.com/taskrevolution/ttr/internal/usecase"
)

var updateCmd = &cobra.Command{
	Use:     "update",
	Aliases: []string{"edit"},
	Short:   "Patch a project's or task's dates",
}

var (
	updateCompanyCode string
	updateProjectCode string
	updateStart       string
	updateEnd         string
)

var updateProjectCmd = &cobra.Command{
	Use:   "project <code>",
	Short: "Patch a project's start/end dates",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := resolveContext(context.Overrides{Company: updateCompanyCode})
		if err != nil {
			return err
		}
		if ctx.CompanyCode == "" {
			return fmt.Errorf("update project: no company in scope (use --company)")
		}

		var start, end *time.Time
		if cmd.Flags().Changed("start") {
			t, err := time.Parse(dateLayout, updateStart)
			if err != nil {
				return fmt.Errorf("invalid --start date %q: %w", updateStart, err)
			}
			start = &t
		}
		if cmd.Flags().Changed("due") {
			t, err := time.Parse(dateLayout, updateEnd)
			if err != nil {
				return fmt.Errorf("invalid --due date %q: %w", updateEnd, err)
			}
			end = &t
		}

		return withLock(ctx, lock.Exclusive, "update project", func(reg *repo.Registry) error {
			env := usecase.Env{Reg: reg, Clock: clock.Real{}}
			p, err := env.UpdateProjectDates(usecase.UpdateProjectDatesInput{
				CompanyCode: ctx.CompanyCode, ProjectCode: args[0], Start: start, End: end,
			})
			if err != nil {
				return err
			}
			if !quiet {
				fmt.Printf("Updated project %s\n", p.Code)
			}
			return nil
		})
	},
}

var updateTaskCmd = &cobra.Command{
	Use:   "task <code>",
	Short: "Patch a task's declared start/due dates, propagating to successors",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := resolveContext(context.Overrides{Company: updateCompanyCode, Project: updateProjectCode})
		if err != nil {
			return err
		}
		if ctx.CompanyCode == "" || ctx.ProjectCode == "" {
			return fmt.Errorf("update task: no project in scope (use --company/--project)")
		}
		start, due, err := parseTaskDates(updateStart, updateEnd)
		if err != nil {
			return err
		}

		return withLock(ctx, lock.Exclusive, "update task", func(reg *repo.Registry) error {
			env := usecase.Env{Reg: reg, Clock: clock.Real{}}
			result, err := env.UpdateTaskDates(usecase.UpdateTaskDatesInput{
				CompanyCode: ctx.CompanyCode, ProjectCode: ctx.ProjectCode, TaskCode: args[0],
				Start: start, Due: due,
			})
			if err != nil {
				return err
			}
			if !quiet {
				fmt.Printf("Updated task %s\n", result.Task.Code)
				printPropagation(result.PropagatedChanges)
			}
			return nil
		})
	},
}

func init() {
	updateCmd.PersistentFlags().StringVar(&updateCompanyCode, "company", "", "company code (overrides ambient scope)")
	updateCmd.PersistentFlags().StringVar(&updateProjectCode, "project", "", "project code (overrides ambient scope)")
	updateCmd.PersistentFlags().StringVar(&updateStart, "start", "", "new start date, YYYY-MM-DD")
	updateCmd.PersistentFlags().StringVar(&updateEnd, "due", "", "new due/end date, YYYY-MM-DD")

	updateCmd.AddCommand(updateProjectCmd, updateTaskCmd)
	rootCmd.AddCommand(updateCmd)
}
