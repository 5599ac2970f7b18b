// Package build renders a workspace into a navigable static HTML site:
// one page per company, project, task, and resource, plus a Gantt chart
// per company and per project (§4.H). Independent pages are rendered
// concurrently and written out sequentially, the same "compute in
// parallel, commit in order" discipline the Repository Layer's write-set
// uses for manifest saves.
package build

import (
	"time"

	"go.uber.org/zap"

	"github.com/taskrevolution/ttr/internal/buildlog"
	"github.com/taskrevolution/ttr/internal/entity"
	"github.com/taskrevolution/ttr/internal/repo"
	"github.com/taskrevolution/ttr/internal/schedule"
	"github.com/taskrevolution/ttr/internal/validate"
)

// Options controls a Build run.
type Options struct {
	OutDir      string
	Concurrency int // page renders in flight at once; <=0 defaults to 4
	Logger      *zap.SugaredLogger // internal diagnostics; nil uses a Nop logger
}

func (o Options) logger() *zap.SugaredLogger {
	if o.Logger != nil {
		return o.Logger
	}
	return buildlog.New()
}

// Report summarizes a completed build.
type Report struct {
	PagesWritten int
	OutDir       string
}

// loadWorld mirrors usecase.LoadWorld: build renders from the same
// validate.World snapshot use-cases validate against, so the site always
// reflects a state the Validation Framework has already looked at.
func loadWorld(reg *repo.Registry) (*validate.World, error) {
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

// calendarFor builds the schedule.Calendar a project's Gantt chart and
// computed windows use, falling back to entity.NewConfig's defaults when
// the workspace carries no config.yaml yet.
func calendarFor(w *validate.World) *schedule.Calendar {
	cfg := w.Config
	if cfg == nil {
		cfg = entity.NewConfig("", "", "", time.Time{})
	}
	return schedule.NewCalendar(cfg)
}
