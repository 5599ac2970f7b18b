package usecase

import (
	"github.com/taskrevolution/ttr/internal/entity"
	"github.com/taskrevolution/ttr/internal/repo"
	"github.com/taskrevolution/ttr/internal/validate"
)

// AddVacationInput carries a create-vacation/time-off request.
type AddVacationInput struct {
	CompanyCode  string
	ProjectCode  string
	ResourceCode string
	Period       entity.VacationPeriod
}

// AddVacationResult pairs the updated resource with the re-evaluated
// vacation/overlap rule findings (§4.E "create vacation / time-off:
// append period, re-evaluate overlap rules").
type AddVacationResult struct {
	Resource   *entity.Resource
	Violations validate.Result
}

// AddVacation appends a vacation period to a resource and re-evaluates
// the vacation/overlap rules, blocking only on Error-severity findings.
func (e Env) AddVacation(in AddVacationInput) (*AddVacationResult, error) {
	// Mutate the resource instance inside the loaded world so the rules
	// below see the new period, as AssignResource does.
	world, err := LoadWorld(e.Reg)
	if err != nil {
		return nil, err
	}
	r, ownerProject := findResourceInWorld(world, in.CompanyCode, in.ProjectCode, in.ResourceCode)
	if r == nil {
		return nil, &repo.NotFoundError{Kind: "resource", Code: in.ResourceCode}
	}

	r.AddVacation(in.Period, e.Clock.Now())

	result := validate.VacationRulesSpec(world)
	if result.HasErrors() {
		return nil, &ValidationFailedError{Violations: result}
	}

	if err := e.Reg.Resources.Save(in.CompanyCode, ownerProject, r); err != nil {
		return nil, err
	}
	return &AddVacationResult{Resource: r, Violations: result}, nil
}
