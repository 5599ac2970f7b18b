package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"reflect"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/taskrevolution/ttr/internal/context"
	"github.com/taskrevolution/ttr/internal/entity"
	"github.com/taskrevolution/ttr/internal/lock"
	"github.com/taskrevolution/ttr/internal/repo"
)

var (
	listCompanyCode string
	listProjectCode string
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List companies, projects, tasks, or resources",
}

var listCompaniesCmd = &cobra.Command{
	Use:   "companies",
	Short: "List every company in the workspace",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := resolveContext(context.Overrides{})
		if err != nil {
			return err
		}
		return withLock(ctx, lock.Shared, "list companies", func(reg *repo.Registry) error {
			companies, err := reg.Companies.FindAll()
			if err != nil {
				return err
			}
			if jsonOut || jsonlOut {
				return emitJSON(companies)
			}
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "CODE\tNAME\tSTATUS")
			for _, c := range companies {
				fmt.Fprintf(w, "%s\t%s\t%s\n", c.Code, c.Name, c.Status)
			}
			return w.Flush()
		})
	},
}

var listProjectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "List projects under a company",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := resolveContext(context.Overrides{Company: listCompanyCode})
		if err != nil {
			return err
		}
		if ctx.CompanyCode == "" {
			return fmt.Errorf("list projects: no company in scope (use --company)")
		}
		return withLock(ctx, lock.Shared, "list projects", func(reg *repo.Registry) error {
			projects, err := reg.Projects.FindAll(ctx.CompanyCode)
			if err != nil {
				return err
			}
			if jsonOut || jsonlOut {
				return emitJSON(projects)
			}
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "CODE\tNAME\tSTATUS")
			for _, p := range projects {
				fmt.Fprintf(w, "%s\t%s\t%s\n", p.Code, p.Name, p.Status)
			}
			return w.Flush()
		})
	},
}

var listTasksCmd = &cobra.Command{
	Use:   "tasks",
	Short: "List tasks under a project",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := resolveContext(context.Overrides{Company: listCompanyCode, Project: listProjectCode})
		if err != nil {
			return err
		}
		if ctx.CompanyCode == "" || ctx.ProjectCode == "" {
			return fmt.Errorf("list tasks: no project in scope (use --company/--project)")
		}
		return withLock(ctx, lock.Shared, "list tasks", func(reg *repo.Registry) error {
			tasks, err := reg.Tasks.FindAll(ctx.CompanyCode, ctx.ProjectCode)
			if err != nil {
				return err
			}
			if jsonOut || jsonlOut {
				return emitJSON(tasks)
			}
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "CODE\tNAME\tSTATUS\tSTART\tDUE")
			for _, t := range tasks {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", t.Code, t.Name, t.Status,
					t.StartDate.Format(dateLayout), t.DueDate.Format(dateLayout))
			}
			return w.Flush()
		})
	},
}

var listResourcesCmd = &cobra.Command{
	Use:   "resources",
	Short: "List company- or project-scope resources",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := resolveContext(context.Overrides{Company: listCompanyCode, Project: listProjectCode})
		if err != nil {
			return err
		}
		if ctx.CompanyCode == "" {
			return fmt.Errorf("list resources: no company in scope (use --company)")
		}
		return withLock(ctx, lock.Shared, "list resources", func(reg *repo.Registry) error {
			var resources []*entity.Resource
			company, err := reg.Resources.FindAllCompanyScoped(ctx.CompanyCode)
			if err != nil {
				return err
			}
			resources = append(resources, company...)
			if ctx.ProjectCode != "" {
				project, err := reg.Resources.FindAllProjectScoped(ctx.CompanyCode, ctx.ProjectCode)
				if err != nil {
					return err
				}
				resources = append(resources, project...)
			}
			if jsonOut || jsonlOut {
				return emitJSON(resources)
			}
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "CODE\tNAME\tTYPE\tSCOPE\tSTATUS")
			for _, r := range resources {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", r.Code, r.Name, r.ResourceType, r.Scope, r.Status)
			}
			return w.Flush()
		})
	},
}

// emitJSON writes v to stdout, one line per top-level element when
// --jsonl is set, or a single indented array/object for --json.
func emitJSON(v any) error {
	if jsonlOut {
		enc := json.NewEncoder(os.Stdout)
		rv := reflect.ValueOf(v)
		if rv.Kind() != reflect.Slice {
			return enc.Encode(v)
		}
		for i := 0; i < rv.Len(); i++ {
			if err := enc.Encode(rv.Index(i).Interface()); err != nil {
				return err
			}
		}
		return nil
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func init() {
	listCmd.PersistentFlags().StringVar(&listCompanyCode, "company", "", "company code (overrides ambient scope)")
	listCmd.PersistentFlags().StringVar(&listProjectCode, "project", "", "project code (overrides ambient scope)")
	listCmd.AddCommand(listCompaniesCmd, listProjectsCmd, listTasksCmd, listResourcesCmd)
	rootCmd.AddCommand(listCmd)
}
