package usecase

import (
	"github.com/taskrevolution/ttr/internal/entity"
	"github.com/taskrevolution/ttr/internal/repo"
	"github.com/taskrevolution/ttr/internal/validate"
)

// LoadWorld builds a validate.World snapshot of the entire workspace, the
// input every use-case's validation pass (§4.F), the standalone
// `validate` command, and the `search`/`build` commands' read-only view.
func LoadWorld(reg *repo.Registry) (*validate.World, error) {
	w := &validate.World{
		Tasks:            map[string][]*entity.Task{},
		CompanyResources: map[string][]*entity.Resource{},
		ProjectResources: map[string][]*entity.Resource{},
	}

	cfg, err := reg.Config.Load()
	if err == nil {
		w.Config = cfg
	}

	companyCodes, err := reg.WS.CompanyCodes()
	if err != nil {
		return nil, err
	}
	for _, code := range companyCodes {
		c, err := reg.Companies.FindByCode(code)
		if err != nil {
			continue
		}
		w.Companies = append(w.Companies, c)

		resources, err := reg.Resources.FindAllCompanyScoped(code)
		if err != nil {
			return nil, err
		}
		w.CompanyResources[code] = resources

		projects, err := reg.Projects.FindAll(code)
		if err != nil {
			return nil, err
		}
		for _, p := range projects {
			w.Projects = append(w.Projects, validate.ProjectEntry{Project: p, CompanyCode: code})

			tasks, err := reg.Tasks.FindAll(code, p.Code)
			if err != nil {
				return nil, err
			}
			w.Tasks[code+"/"+p.Code] = tasks

			projectResources, err := reg.Resources.FindAllProjectScoped(code, p.Code)
			if err != nil {
				return nil, err
			}
			w.ProjectResources[code+"/"+p.Code] = projectResources
		}
	}

	return w, nil
}
