package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/taskrevolution/ttr/internal/clock"
	"github.com/taskrevolution/ttr/internal/context"
	"github.com/taskrevolution/ttr/internal/entity"
	"github.com/taskrevolution/ttr/internal/lock"
	"github.com/taskrevolution/ttr/internal/repo"
	"github.com/taskrevolution/ttr/internal/usecase"
)

var deleteCmd = &cobra.Command{
	Use:     "delete",
	Aliases: []string{"rm"},
	Short:   "Soft-delete a company, project, task, or resource",
}

var (
	deleteCompanyCode string
	deleteProjectCode string
)

// reportDelete prints the idempotent-delete outcome: AlreadyDeletedWarning
// is a successful no-op (invariant 7), any other error is fatal.
func reportDelete(kind, code string, delErr error) error {
	if delErr != nil {
		if _, ok := delErr.(*entity.AlreadyDeletedWarning); ok {
			if !quiet {
				fmt.Printf("%s %s was already deleted\n", kind, code)
			}
			return nil
		}
		return delErr
	}
	if !quiet {
		fmt.Printf("Deleted %s %s\n", kind, code)
	}
	return nil
}

var deleteCompanyCmd = &cobra.Command{
	Use:   "company <code>",
	Short: "Soft-delete a company",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := resolveContext(context.Overrides{})
		if err != nil {
			return err
		}
		return withLock(ctx, lock.Exclusive, "delete company", func(reg *repo.Registry) error {
			env := usecase.Env{Reg: reg, Clock: clock.Real{}}
			_, delErr := env.DeleteCompany(args[0])
			return reportDelete("company", args[0], delErr)
		})
	},
}

var deleteProjectCmd = &cobra.Command{
	Use:   "project <code>",
	Short: "Soft-delete a project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := resolveContext(context.Overrides{Company: deleteCompanyCode})
		if err != nil {
			return err
		}
		if ctx.CompanyCode == "" {
			return fmt.Errorf("delete project: no company in scope (use --company)")
		}
		return withLock(ctx, lock.Exclusive, "delete project", func(reg *repo.Registry) error {
			env := usecase.Env{Reg: reg, Clock: clock.Real{}}
			_, delErr := env.DeleteProject(ctx.CompanyCode, args[0])
			return reportDelete("project", args[0], delErr)
		})
	},
}

var deleteTaskCmd = &cobra.Command{
	Use:   "task <code>",
	Short: "Soft-delete a task",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := resolveContext(context.Overrides{Company: deleteCompanyCode, Project: deleteProjectCode})
		if err != nil {
			return err
		}
		if ctx.CompanyCode == "" || ctx.ProjectCode == "" {
			return fmt.Errorf("delete task: no project in scope (use --company/--project)")
		}
		return withLock(ctx, lock.Exclusive, "delete task", func(reg *repo.Registry) error {
			env := usecase.Env{Reg: reg, Clock: clock.Real{}}
			_, delErr := env.DeleteTask(ctx.CompanyCode, ctx.ProjectCode, args[0])
			return reportDelete("task", args[0], delErr)
		})
	},
}

var deleteResourceCmd = &cobra.Command{
	Use:   "resource <code>",
	Short: "Soft-delete a company- or project-scope resource",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := resolveContext(context.Overrides{Company: deleteCompanyCode, Project: deleteProjectCode})
		if err != nil {
			return err
		}
		if ctx.CompanyCode == "" {
			return fmt.Errorf("delete resource: no company in scope (use --company)")
		}
		return withLock(ctx, lock.Exclusive, "delete resource", func(reg *repo.Registry) error {
			env := usecase.Env{Reg: reg, Clock: clock.Real{}}
			_, delErr := env.DeleteResource(ctx.CompanyCode, ctx.ProjectCode, args[0])
			return reportDelete("resource", args[0], delErr)
		})
	},
}

func init() {
	deleteCmd.PersistentFlags().StringVar(&deleteCompanyCode, "company", "", "company code (overrides ambient scope)")
	deleteCmd.PersistentFlags().StringVar(&deleteProjectCode, "project", "", "project code (overrides ambient scope)")
	deleteCmd.AddCommand(deleteCompanyCmd, deleteProjectCmd, deleteTaskCmd, deleteResourceCmd)
	rootCmd.AddCommand(deleteCmd)
}
