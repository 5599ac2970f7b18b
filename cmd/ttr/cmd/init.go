package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/taskrevolution/ttr/internal/clock"
	"github.com/taskrevolution/ttr/internal/config"
	"github.com/taskrevolution/ttr/internal/lock"
	"github.com/taskrevolution/ttr/internal/repo"
	"github.com/taskrevolution/ttr/internal/usecase"
)

var (
	initManagerName  string
	initManagerEmail string
	initForce        bool
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a new workspace in the current (or --workspace) directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		root, _, err := config.ResolveRoot(workspaceFlag)
		if err != nil {
			return err
		}

		l, err := lock.Acquire(repo.New(root).LockPath(), lock.Exclusive, "init")
		if err != nil {
			return err
		}
		defer l.Release()

		env := usecase.Env{Reg: repo.Open(root), Clock: clock.Real{}}
		createdBy := currentUser()
		cfg, err := env.Init(usecase.InitInput{
			ManagerName:  initManagerName,
			ManagerEmail: initManagerEmail,
			CreatedBy:    createdBy,
			Force:        initForce,
		})
		if err != nil {
			return err
		}

		if !quiet {
			fmt.Printf("Initialized workspace at %s (manager: %s)\n", root, cfg.ManagerName)
		}
		return nil
	},
}

func currentUser() string {
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return "unknown"
}

func init() {
	initCmd.Flags().StringVar(&initManagerName, "manager-name", "", "workspace manager's name")
	initCmd.Flags().StringVar(&initManagerEmail, "manager-email", "", "workspace manager's email")
	initCmd.Flags().BoolVar(&initForce, "force", false, "overwrite an existing config.yaml")
	rootCmd.AddCommand(initCmd)
}
