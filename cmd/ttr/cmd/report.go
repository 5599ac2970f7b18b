package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/taskrevolution/ttr/internal/context"
	"github.com/taskrevolution/ttr/internal/entity"
	"github.com/taskrevolution/ttr/internal/lock"
	"github.com/taskrevolution/ttr/internal/repo"
	"github.com/taskrevolution/ttr/internal/report"
	"github.com/taskrevolution/ttr/internal/schedule"
)

var (
	reportCompanyCode string
	reportProjectCode string
	reportWIPLimit    int
)

var reportCmd = &cobra.Command{
	Use:   "report <kind>",
	Short: "Emit a CSV report: task, vacation, or wip",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := resolveContext(context.Overrides{Company: reportCompanyCode, Project: reportProjectCode})
		if err != nil {
			return err
		}
		return withLock(ctx, lock.Shared, "report", func(reg *repo.Registry) error {
			switch args[0] {
			case "task":
				return reportTask(reg, ctx)
			case "vacation":
				return reportVacation(reg, ctx)
			case "wip":
				return reportWIP(reg, ctx)
			default:
				return cmd.Help()
			}
		})
	},
}

func reportTask(reg *repo.Registry, ctx *context.Context) error {
	companies, err := scopedCompanies(reg, ctx)
	if err != nil {
		return err
	}

	var rows []report.TaskRow
	for _, companyCode := range companies {
		projects, err := reg.Projects.FindAll(companyCode)
		if err != nil {
			return err
		}
		for _, p := range projects {
			if ctx.ProjectCode != "" && p.Code != ctx.ProjectCode {
				continue
			}
			tasks, err := reg.Tasks.FindAll(companyCode, p.Code)
			if err != nil {
				return err
			}
			cfg, err := reg.Config.Load()
			if err != nil {
				return err
			}
			cal := schedule.NewCalendar(cfg)
			resources := resourceVacationMap(reg, companyCode, p.Code)
			results, err := schedule.Recompute(tasks, cal, resources, schedule.NewCache())
			if err != nil {
				return err
			}
			windowByCode := make(map[string]schedule.Window, len(results))
			for _, r := range results {
				windowByCode[r.Task.Code] = r.Window
			}
			for _, t := range tasks {
				win := windowByCode[t.Code]
				rows = append(rows, report.TaskRow{ProjectCode: p.Code, Task: t, Window: &win})
			}
		}
	}
	return report.WriteTaskCSV(os.Stdout, rows)
}

func reportVacation(reg *repo.Registry, ctx *context.Context) error {
	companies, err := scopedCompanies(reg, ctx)
	if err != nil {
		return err
	}
	var resources []*entity.Resource
	for _, companyCode := range companies {
		company, err := reg.Resources.FindAllCompanyScoped(companyCode)
		if err != nil {
			return err
		}
		resources = append(resources, company...)
		if ctx.ProjectCode != "" {
			project, err := reg.Resources.FindAllProjectScoped(companyCode, ctx.ProjectCode)
			if err != nil {
				return err
			}
			resources = append(resources, project...)
		}
	}
	return report.WriteVacationCSV(os.Stdout, resources)
}

func reportWIP(reg *repo.Registry, ctx *context.Context) error {
	companies, err := scopedCompanies(reg, ctx)
	if err != nil {
		return err
	}
	limit := reportWIPLimit
	if limit <= 0 {
		if cfg, err := reg.Config.Load(); err == nil {
			limit = cfg.MaxActiveTasks
		}
	}
	var resources []*entity.Resource
	for _, companyCode := range companies {
		company, err := reg.Resources.FindAllCompanyScoped(companyCode)
		if err != nil {
			return err
		}
		resources = append(resources, company...)
	}
	return report.WriteWIPCSV(os.Stdout, resources, limit)
}

// scopedCompanies returns the single ambient company code, or every
// company in the workspace when no scope was resolved.
func scopedCompanies(reg *repo.Registry, ctx *context.Context) ([]string, error) {
	if ctx.CompanyCode != "" {
		return []string{ctx.CompanyCode}, nil
	}
	return reg.WS.CompanyCodes()
}

func resourceVacationMap(reg *repo.Registry, companyCode, projectCode string) map[string][]entity.VacationPeriod {
	out := map[string][]entity.VacationPeriod{}
	if company, err := reg.Resources.FindAllCompanyScoped(companyCode); err == nil {
		for _, r := range company {
			out[r.Code] = r.Vacations
		}
	}
	if project, err := reg.Resources.FindAllProjectScoped(companyCode, projectCode); err == nil {
		for _, r := range project {
			out[r.Code] = r.Vacations
		}
	}
	return out
}

func init() {
	reportCmd.Flags().StringVar(&reportCompanyCode, "company", "", "company code (overrides ambient scope)")
	reportCmd.Flags().StringVar(&reportProjectCode, "project", "", "project code (overrides ambient scope)")
	reportCmd.Flags().IntVar(&reportWIPLimit, "wip-limit", 0, "WIP limit override (default: config.yaml's MaxActiveTasks)")
	rootCmd.AddCommand(reportCmd)
}
