package usecase

import (
	"github.com/taskrevolution/ttr/internal/entity"
	"github.com/taskrevolution/ttr/internal/repo"
	"github.com/taskrevolution/ttr/internal/validate"
)

// AssignResourceInput carries a task-assign-resource request. Allocation
// defaults to 100 when zero (§4.E "allocation defaults to 100%").
type AssignResourceInput struct {
	CompanyCode  string
	ProjectCode  string
	TaskCode     string
	ResourceCode string
	Allocation   int
}

// AssignResourceResult pairs the updated task and resource with any
// overbooking warning surfaced by the WIP rule (a warning, not a
// rejection, per §4.E "overbooking is a validation warning").
type AssignResourceResult struct {
	Task       *entity.Task
	Resource   *entity.Resource
	Violations validate.Result
}

// AssignResource adds resourceCode to the task's assigned set and records
// a matching ProjectAssignment on the resource.
func (e Env) AssignResource(in AssignResourceInput) (*AssignResourceResult, error) {
	// Load the world first, and mutate the task/resource instances that
	// live inside it, so the validation pass below sees the candidate
	// post-state (this task newly assigned) rather than stale on-disk
	// state — the same ordering create.go uses (§4.E step 2).
	world, err := LoadWorld(e.Reg)
	if err != nil {
		return nil, err
	}

	key := in.CompanyCode + "/" + in.ProjectCode
	var t *entity.Task
	for _, candidate := range world.Tasks[key] {
		if candidate.Code == in.TaskCode {
			t = candidate
			break
		}
	}
	if t == nil {
		return nil, &repo.NotFoundError{Kind: "task", Code: in.TaskCode}
	}

	r, ownerProject := findResourceInWorld(world, in.CompanyCode, in.ProjectCode, in.ResourceCode)
	if r == nil {
		return nil, &repo.NotFoundError{Kind: "resource", Code: in.ResourceCode}
	}

	allocation := in.Allocation
	if allocation == 0 {
		allocation = 100
	}

	now := e.Clock.Now()
	t.AssignResource(in.ResourceCode, now)
	r.AddAssignment(entity.ProjectAssignment{
		ProjectCode: in.ProjectCode,
		Start:       t.StartDate,
		End:         t.DueDate,
		Allocation:  allocation,
	}, now, now)

	result := validate.And(validate.ReferentialRules, validate.WIPRule)(world)
	if result.HasErrors() {
		return nil, &ValidationFailedError{Violations: result}
	}

	if err := e.Reg.Tasks.Save(in.CompanyCode, t); err != nil {
		return nil, err
	}
	if err := e.Reg.Resources.Save(in.CompanyCode, ownerProject, r); err != nil {
		return nil, err
	}

	return &AssignResourceResult{Task: t, Resource: r, Violations: result}, nil
}

// findResourceInWorld resolves a resource code the way ResourceRepo.Resolve
// does (project scope shadows company scope) but against the already
// loaded world, returning the owning project code to pass to Save (empty
// for a company-scope resource).
func findResourceInWorld(w *validate.World, companyCode, projectCode, code string) (*entity.Resource, string) {
	if projectCode != "" {
		for _, r := range w.ProjectResources[companyCode+"/"+projectCode] {
			if r.Code == code {
				return r, projectCode
			}
		}
	}
	for _, r := range w.CompanyResources[companyCode] {
		if r.Code == code {
			return r, ""
		}
	}
	return nil, ""
}

// UnassignResource removes resourceCode from the task's assigned set.
func (e Env) UnassignResource(companyCode, projectCode, taskCode, resourceCode string) (*entity.Task, error) {
	t, err := e.Reg.Tasks.FindByCode(companyCode, projectCode, taskCode)
	if err != nil {
		return nil, err
	}
	t.UnassignResource(resourceCode, e.Clock.Now())
	if err := e.Reg.Tasks.Save(companyCode, t); err != nil {
		return nil, err
	}
	return t, nil
}
