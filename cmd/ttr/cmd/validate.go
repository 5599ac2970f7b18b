package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/taskrevolution/ttr/internal/clock"
	"github.com/taskrevolution/ttr/internal/context"
	"github.com/taskrevolution/ttr/internal/lock"
	"github.com/taskrevolution/ttr/internal/repo"
	"github.com/taskrevolution/ttr/internal/usecase"
	"github.com/taskrevolution/ttr/internal/validate"
)

var validateCmd = &cobra.Command{
	Use:     "validate",
	Aliases: []string{"check"},
	Short:   "Run the full rule suite over the whole workspace",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := resolveContext(context.Overrides{})
		if err != nil {
			return err
		}
		return withLock(ctx, lock.Shared, "validate", func(reg *repo.Registry) error {
			env := usecase.Env{Reg: reg, Clock: clock.Real{}}
			result, err := env.Validate()
			if err != nil {
				return err
			}

			if jsonOut || jsonlOut {
				if err := emitJSON(result); err != nil {
					return err
				}
			} else {
				printViolations(result)
			}

			if result.HasErrors() {
				return fmt.Errorf("validation failed with %d error(s)", countErrors(result))
			}
			return nil
		})
	},
}

func printViolations(result validate.Result) {
	if len(result) == 0 {
		if !quiet {
			fmt.Println("No violations found")
		}
		return
	}
	for _, v := range result {
		fmt.Printf("[%s] %s: %s (%s)\n", v.Severity, v.Category, v.Message, v.Pointer.Code)
	}
}

func countErrors(result validate.Result) int {
	n := 0
	for _, v := range result {
		if v.Severity == validate.SeverityError {
			n++
		}
	}
	return n
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
