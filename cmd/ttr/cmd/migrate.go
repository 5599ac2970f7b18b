package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/taskrevolution/ttr/internal/context"
	"github.com/taskrevolution/ttr/internal/lock"
	"github.com/taskrevolution/ttr/internal/repo"
)

// migrateCmd forces every manifest in the workspace through a
// decode/re-encode cycle. Decoding already upgrades an old apiVersion in
// memory (internal/codec's migrate table); this command is what actually
// persists the upgraded apiVersion back to disk, since a plain `ls` or
// `validate` never writes anything.
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Rewrite every manifest in the workspace to the current apiVersion",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := resolveContext(context.Overrides{})
		if err != nil {
			return err
		}
		return withLock(ctx, lock.Exclusive, "migrate", func(reg *repo.Registry) error {
			n, err := migrateWorkspace(reg)
			if err != nil {
				return err
			}
			if !quiet {
				fmt.Printf("Rewrote %d manifest(s)\n", n)
			}
			return nil
		})
	},
}

func migrateWorkspace(reg *repo.Registry) (int, error) {
	n := 0

	if cfg, err := reg.Config.Load(); err == nil {
		if err := reg.Config.Save(cfg); err != nil {
			return n, err
		}
		n++
	}

	companyCodes, err := reg.WS.CompanyCodes()
	if err != nil {
		return n, err
	}
	for _, companyCode := range companyCodes {
		c, err := reg.Companies.FindByCode(companyCode)
		if err != nil {
			return n, err
		}
		if err := reg.Companies.Save(c); err != nil {
			return n, err
		}
		n++

		companyResources, err := reg.Resources.FindAllCompanyScoped(companyCode)
		if err != nil {
			return n, err
		}
		for _, r := range companyResources {
			if err := reg.Resources.SaveCompanyScoped(companyCode, r); err != nil {
				return n, err
			}
			n++
		}

		projects, err := reg.Projects.FindAll(companyCode)
		if err != nil {
			return n, err
		}
		for _, p := range projects {
			if err := reg.Projects.SaveInHierarchy(p, companyCode); err != nil {
				return n, err
			}
			n++

			tasks, err := reg.Tasks.FindAll(companyCode, p.Code)
			if err != nil {
				return n, err
			}
			for _, t := range tasks {
				if err := reg.Tasks.Save(companyCode, t); err != nil {
					return n, err
				}
				n++
			}

			projectResources, err := reg.Resources.FindAllProjectScoped(companyCode, p.Code)
			if err != nil {
				return n, err
			}
			for _, r := range projectResources {
				if err := reg.Resources.SaveProjectScoped(companyCode, p.Code, r); err != nil {
					return n, err
				}
				n++
			}
		}
	}

	return n, nil
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
