package usecase

import (
	"time"

	"github.com/taskrevolution/ttr/internal/entity"
	"github.com/taskrevolution/ttr/internal/schedule"
)

// UpdateProjectDatesInput patches a project's start/end dates, triggering
// re-validation of the new window (§4.E "update <kind>").
type UpdateProjectDatesInput struct {
	CompanyCode string
	ProjectCode string
	Start       *time.Time
	End         *time.Time
}

// UpdateProjectDates applies a date patch to a project.
func (e Env) UpdateProjectDates(in UpdateProjectDatesInput) (*entity.Project, error) {
	p, err := e.Reg.Projects.FindByCode(in.CompanyCode, in.ProjectCode)
	if err != nil {
		return nil, err
	}
	if err := p.SetDates(in.Start, in.End, e.Clock.Now()); err != nil {
		return nil, err
	}
	if err := e.Reg.Projects.Save(p); err != nil {
		return nil, err
	}
	return p, nil
}

// UpdateTaskDatesInput patches a task's declared start/due dates, which
// must trigger dependency propagation to its successors (§4.E).
type UpdateTaskDatesInput struct {
	CompanyCode string
	ProjectCode string
	TaskCode    string
	Start       time.Time
	Due         time.Time
}

// UpdateTaskDatesResult reports the task that was patched plus every
// successor whose computed window moved as a result.
type UpdateTaskDatesResult struct {
	Task              *entity.Task
	PropagatedChanges []schedule.Result
}

// UpdateTaskDates patches a task's dates and recomputes its transitive
// successor closure (§4.E, §4.G.4).
func (e Env) UpdateTaskDates(in UpdateTaskDatesInput) (*UpdateTaskDatesResult, error) {
	t, err := e.Reg.Tasks.FindByCode(in.CompanyCode, in.ProjectCode, in.TaskCode)
	if err != nil {
		return nil, err
	}
	if err := t.SetDates(in.Start, in.Due, e.Clock.Now()); err != nil {
		return nil, err
	}

	if err := e.Reg.Tasks.Save(in.CompanyCode, t); err != nil {
		return nil, err
	}

	changes, err := e.propagate(in.CompanyCode, in.ProjectCode, in.TaskCode)
	if err != nil {
		return nil, err
	}
	return &UpdateTaskDatesResult{Task: t, PropagatedChanges: changes}, nil
}

// propagate recomputes the transitive successor closure of changedCode
// within its project and persists the updated start/due dates for every
// task whose computed window moved (§4.G.4, §4.E step 4).
func (e Env) propagate(companyCode, projectCode, changedCode string) ([]schedule.Result, error) {
	cfg, err := e.Reg.Config.Load()
	if err != nil {
		return nil, err
	}
	tasks, err := e.Reg.Tasks.FindAll(companyCode, projectCode)
	if err != nil {
		return nil, err
	}

	resources := map[string][]entity.VacationPeriod{}
	for _, r := range e.visibleResources(companyCode, projectCode) {
		resources[r.Code] = r.Vacations
	}

	cal := schedule.NewCalendar(cfg)
	cache := schedule.NewCache()
	results, err := schedule.RecomputeClosure(tasks, changedCode, cal, resources, cache)
	if err != nil {
		return nil, err
	}

	entries := make([]struct {
		code string
		t    *entity.Task
	}, 0, len(results))
	for _, r := range results {
		if r.Task.Code == changedCode {
			continue // already saved by the caller
		}
		if !r.Changed {
			continue
		}
		r.Task.StartDate = r.Window.EarliestStart
		r.Task.DueDate = r.Window.EarliestFinish
		entries = append(entries, struct {
			code string
			t    *entity.Task
		}{code: r.Task.Code, t: r.Task})
	}
	for _, en := range entries {
		if err := e.Reg.Tasks.Save(companyCode, en.t); err != nil {
			return results, err
		}
	}
	return results, nil
}

func (e Env) visibleResources(companyCode, projectCode string) []*entity.Resource {
	company, _ := e.Reg.Resources.FindAllCompanyScoped(companyCode)
	project, _ := e.Reg.Resources.FindAllProjectScoped(companyCode, projectCode)
	return append(company, project...)
}
