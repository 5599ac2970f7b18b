package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/taskrevolution/ttr/internal/clock"
	"github.com/taskrevolution/ttr/internal/context"
	"github.com/taskrevolution/ttr/internal/lock"
	"github.com/taskrevolution/ttr/internal/repo"
	"github.com/taskrevolution/ttr/internal/usecase"
)

var (
	taskCompanyCode string
	taskProjectCode string
	taskAllocation  int
)

var taskCmd = &cobra.Command{
	Use:   "task",
	Short: "Operate on a single task's resource assignments",
}

var taskAssignResourceCmd = &cobra.Command{
	Use:   "assign-resource <task-code> <resource-code>",
	Short: "Assign a resource to a task",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := resolveContext(context.Overrides{Company: taskCompanyCode, Project: taskProjectCode})
		if err != nil {
			return err
		}
		if ctx.CompanyCode == "" || ctx.ProjectCode == "" {
			return fmt.Errorf("task assign-resource: no project in scope (use --company/--project)")
		}
		return withLock(ctx, lock.Exclusive, "task assign-resource", func(reg *repo.Registry) error {
			env := usecase.Env{Reg: reg, Clock: clock.Real{}}
			result, err := env.AssignResource(usecase.AssignResourceInput{
				CompanyCode: ctx.CompanyCode, ProjectCode: ctx.ProjectCode,
				TaskCode: args[0], ResourceCode: args[1], Allocation: taskAllocation,
			})
			if err != nil {
				return err
			}
			if !quiet {
				fmt.Printf("Assigned %s to task %s\n", result.Resource.Code, result.Task.Code)
				printViolations(result.Violations)
			}
			return nil
		})
	},
}

var taskUnassignResourceCmd = &cobra.Command{
	Use:   "unassign-resource <task-code> <resource-code>",
	Short: "Remove a resource from a task",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := resolveContext(context.Overrides{Company: taskCompanyCode, Project: taskProjectCode})
		if err != nil {
			return err
		}
		if ctx.CompanyCode == "" || ctx.ProjectCode == "" {
			return fmt.Errorf("task unassign-resource: no project in scope (use --company/--project)")
		}
		return withLock(ctx, lock.Exclusive, "task unassign-resource", func(reg *repo.Registry) error {
			env := usecase.Env{Reg: reg, Clock: clock.Real{}}
			t, err := env.UnassignResource(ctx.CompanyCode, ctx.ProjectCode, args[0], args[1])
			if err != nil {
				return err
			}
			if !quiet {
				fmt.Printf("Unassigned %s from task %s\n", args[1], t.Code)
			}
			return nil
		})
	},
}

func init() {
	taskCmd.PersistentFlags().StringVar(&taskCompanyCode, "company", "", "company code (overrides ambient scope)")
	taskCmd.PersistentFlags().StringVar(&taskProjectCode, "project", "", "project code (overrides ambient scope)")
	taskAssignResourceCmd.Flags().IntVar(&taskAllocation, "allocation", 0, "allocation percent, 1-100 (default 100)")

	taskCmd.AddCommand(taskAssignResourceCmd, taskUnassignResourceCmd)
	rootCmd.AddCommand(taskCmd)
}
