package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/taskrevolution/ttr/internal/clock"
	"github.com/taskrevolution/ttr/internal/context"
	"github.com/taskrevolution/ttr/internal/entity"
	"github.com/taskrevolution/ttr/internal/lock"
	"github.com/taskrevolution/ttr/internal/repo"
	"github.com/taskrevolution/ttr/internal/usecase"
)

var (
	resourceCompanyCode string
	resourceProjectCode string
	vacationStart       string
	vacationEnd         string
	vacationType        string
	vacationApproved    bool
	vacationLayoff      bool
)

var resourceCmd = &cobra.Command{
	Use:   "resource",
	Short: "Operate on a single resource",
}

var resourceTimeOffCmd = &cobra.Command{
	Use:   "time-off <resource-code>",
	Short: "Record a vacation/time-off period for a resource",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := resolveContext(context.Overrides{Company: resourceCompanyCode, Project: resourceProjectCode})
		if err != nil {
			return err
		}
		if ctx.CompanyCode == "" {
			return fmt.Errorf("resource time-off: no company in scope (use --company)")
		}

		start, err := time.Parse(dateLayout, vacationStart)
		if err != nil {
			return fmt.Errorf("invalid --start date %q: %w", vacationStart, err)
		}
		end, err := time.Parse(dateLayout, vacationEnd)
		if err != nil {
			return fmt.Errorf("invalid --end date %q: %w", vacationEnd, err)
		}

		return withLock(ctx, lock.Exclusive, "resource time-off", func(reg *repo.Registry) error {
			env := usecase.Env{Reg: reg, Clock: clock.Real{}}
			result, err := env.AddVacation(usecase.AddVacationInput{
				CompanyCode: ctx.CompanyCode, ProjectCode: ctx.ProjectCode, ResourceCode: args[0],
				Period: entity.VacationPeriod{
					StartDate: start, EndDate: end,
					Type:     entity.VacationType(vacationType),
					Approved: vacationApproved,
					IsLayoff: vacationLayoff,
				},
			})
			if err != nil {
				return err
			}
			if !quiet {
				fmt.Printf("Recorded time-off for %s\n", result.Resource.Code)
				printViolations(result.Violations)
			}
			return nil
		})
	},
}

var resourceDeactivateCmd = &cobra.Command{
	Use:   "deactivate <resource-code>",
	Short: "Soft-delete a resource",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := resolveContext(context.Overrides{Company: resourceCompanyCode, Project: resourceProjectCode})
		if err != nil {
			return err
		}
		if ctx.CompanyCode == "" {
			return fmt.Errorf("resource deactivate: no company in scope (use --company)")
		}
		return withLock(ctx, lock.Exclusive, "resource deactivate", func(reg *repo.Registry) error {
			env := usecase.Env{Reg: reg, Clock: clock.Real{}}
			_, delErr := env.DeleteResource(ctx.CompanyCode, ctx.ProjectCode, args[0])
			return reportDelete("resource", args[0], delErr)
		})
	},
}

func init() {
	resourceCmd.PersistentFlags().StringVar(&resourceCompanyCode, "company", "", "company code (overrides ambient scope)")
	resourceCmd.PersistentFlags().StringVar(&resourceProjectCode, "project", "", "project code (overrides ambient scope)")

	resourceTimeOffCmd.Flags().StringVar(&vacationStart, "start", "", "time-off start date, YYYY-MM-DD")
	resourceTimeOffCmd.Flags().StringVar(&vacationEnd, "end", "", "time-off end date, YYYY-MM-DD")
	resourceTimeOffCmd.Flags().StringVar(&vacationType, "type", string(entity.VacationVacation), "time-off type")
	resourceTimeOffCmd.Flags().BoolVar(&vacationApproved, "approved", false, "mark the period pre-approved")
	resourceTimeOffCmd.Flags().BoolVar(&vacationLayoff, "layoff", false, "mark the period a company-wide layoff")

	resourceCmd.AddCommand(resourceTimeOffCmd, resourceDeactivateCmd)
	rootCmd.AddCommand(resourceCmd)
}
