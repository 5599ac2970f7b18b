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

var createCmd = &cobra.Command{
	Use:     "create",
	Aliases: []string{"new"},
	Short:   "Create a company, project, task, or resource",
}

var (
	createCode        string
	createCompanyCode string
	createProjectCode string
	createResType     string
	createStart       string
	createDue         string
	createHours       float64
)

const dateLayout = "2006-01-02"

var createCompanyCmd = &cobra.Command{
	Use:   "company <name>",
	Short: "Create a new company",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := resolveContext(context.Overrides{})
		if err != nil {
			return err
		}
		return withLock(ctx, lock.Exclusive, "create company", func(reg *repo.Registry) error {
			env := usecase.Env{Reg: reg, Clock: clock.Real{}}
			c, err := env.CreateCompany(usecase.CreateCompanyInput{
				Code: createCode, Name: args[0], CreatedBy: currentUser(),
			})
			if err != nil {
				return err
			}
			if !quiet {
				fmt.Printf("Created company %s (%s)\n", c.Code, c.Name)
			}
			return nil
		})
	},
}

var createProjectCmd = &cobra.Command{
	Use:   "project <name>",
	Short: "Create a new project under a company",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := resolveContext(context.Overrides{Company: createCompanyCode})
		if err != nil {
			return err
		}
		if ctx.CompanyCode == "" {
			return fmt.Errorf("create project: no company in scope (use --company or run from inside a company directory)")
		}
		return withLock(ctx, lock.Exclusive, "create project", func(reg *repo.Registry) error {
			env := usecase.Env{Reg: reg, Clock: clock.Real{}}
			p, err := env.CreateProject(usecase.CreateProjectInput{
				Code: createCode, CompanyCode: ctx.CompanyCode, Name: args[0], CreatedBy: currentUser(),
			})
			if err != nil {
				return err
			}
			if !quiet {
				fmt.Printf("Created project %s/%s (%s)\n", ctx.CompanyCode, p.Code, p.Name)
			}
			return nil
		})
	},
}

var createTaskCmd = &cobra.Command{
	Use:   "task <name>",
	Short: "Create a new task under a project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := resolveContext(context.Overrides{Company: createCompanyCode, Project: createProjectCode})
		if err != nil {
			return err
		}
		if ctx.CompanyCode == "" || ctx.ProjectCode == "" {
			return fmt.Errorf("create task: no project in scope (use --company/--project or run from inside a project directory)")
		}

		start, due, err := parseTaskDates(createStart, createDue)
		if err != nil {
			return err
		}

		return withLock(ctx, lock.Exclusive, "create task", func(reg *repo.Registry) error {
			env := usecase.Env{Reg: reg, Clock: clock.Real{}}
			t, err := env.CreateTask(usecase.CreateTaskInput{
				Code: createCode, CompanyCode: ctx.CompanyCode, ProjectCode: ctx.ProjectCode,
				Name: args[0], Start: start, Due: due, EstimatedHours: createHours, CreatedBy: currentUser(),
			})
			if err != nil {
				return err
			}
			if !quiet {
				fmt.Printf("Created task %s/%s/%s (%s)\n", ctx.CompanyCode, ctx.ProjectCode, t.Code, t.Name)
			}
			return nil
		})
	},
}

var createResourceCmd = &cobra.Command{
	Use:   "resource <name>",
	Short: "Create a new company- or project-scope resource",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := resolveContext(context.Overrides{Company: createCompanyCode, Project: createProjectCode})
		if err != nil {
			return err
		}
		if ctx.CompanyCode == "" {
			return fmt.Errorf("create resource: no company in scope (use --company or run from inside a company directory)")
		}

		return withLock(ctx, lock.Exclusive, "create resource", func(reg *repo.Registry) error {
			env := usecase.Env{Reg: reg, Clock: clock.Real{}}
			r, err := env.CreateResource(usecase.CreateResourceInput{
				Code: createCode, CompanyCode: ctx.CompanyCode, ProjectCode: ctx.ProjectCode,
				Name: args[0], ResourceType: createResType, CreatedBy: currentUser(),
			})
			if err != nil {
				return err
			}
			if !quiet {
				fmt.Printf("Created resource %s (%s)\n", r.Code, r.Name)
			}
			return nil
		})
	},
}

// parseTaskDates parses --start/--due flags, defaulting start to today
// and due to one week after start when omitted.
func parseTaskDates(start, due string) (time.Time, time.Time, error) {
	now := time.Now().UTC()
	startT := now
	var dueT time.Time

	var err error
	if start != "" {
		startT, err = time.Parse(dateLayout, start)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid --start date %q: %w", start, err)
		}
	}
	if due != "" {
		dueT, err = time.Parse(dateLayout, due)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid --due date %q: %w", due, err)
		}
	} else {
		dueT = startT.AddDate(0, 0, 7)
	}
	return startT, dueT, nil
}

func init() {
	createCmd.PersistentFlags().StringVar(&createCode, "code", "", "explicit code (auto-generated from name if omitted)")
	createCmd.PersistentFlags().StringVar(&createCompanyCode, "company", "", "company code (overrides ambient scope)")
	createCmd.PersistentFlags().StringVar(&createProjectCode, "project", "", "project code (overrides ambient scope)")

	createTaskCmd.Flags().StringVar(&createStart, "start", "", "declared start date, YYYY-MM-DD (default: today)")
	createTaskCmd.Flags().StringVar(&createDue, "due", "", "declared due date, YYYY-MM-DD (default: start+7d)")
	createTaskCmd.Flags().Float64Var(&createHours, "hours", 8, "estimated hours")

	createResourceCmd.Flags().StringVar(&createResType, "type", "", "resource type (must match a configured type)")

	createCmd.AddCommand(createCompanyCmd, createProjectCmd, createTaskCmd, createResourceCmd)
	rootCmd.AddCommand(createCmd)
}
