package usecase

import (
	"time"

	"github.com/taskrevolution/ttr/internal/entity"
	"github.com/taskrevolution/ttr/internal/ids"
	"github.com/taskrevolution/ttr/internal/validate"
)

// resolveCode returns explicitCode if non-empty (after a duplicate check
// against existingCodes), or auto-generates one from name otherwise
// (§4.E "generate code if omitted").
func resolveCode(kind, explicitCode, name string, existingCodes []string) (string, error) {
	existing := map[string]bool{}
	for _, c := range existingCodes {
		existing[c] = true
	}
	if explicitCode != "" {
		if existing[explicitCode] {
			return "", &DuplicateCodeError{Kind: kind, Code: explicitCode}
		}
		return explicitCode, nil
	}
	return GenerateCode(name, existing), nil
}

// CreateCompanyInput carries a create-company request; Code may be empty
// to request auto-generation (§4.E "generate code if omitted").
type CreateCompanyInput struct {
	Code      string
	Name      string
	CreatedBy string
}

// CreateCompany validates and persists a new company.
func (e Env) CreateCompany(in CreateCompanyInput) (*entity.Company, error) {
	existing, err := e.Reg.WS.CompanyCodes()
	if err != nil {
		return nil, err
	}
	code, err := resolveCode("company", in.Code, in.Name, existing)
	if err != nil {
		return nil, err
	}

	now := e.Clock.Now()
	c := entity.NewCompany(ids.New(), code, in.Name, in.CreatedBy, now)

	world, err := LoadWorld(e.Reg)
	if err != nil {
		return nil, err
	}
	world.Companies = append(world.Companies, c)
	if result := validate.IdentityRules(world); result.HasErrors() {
		return nil, &ValidationFailedError{Violations: result}
	}

	if err := e.Reg.Companies.Save(c); err != nil {
		return nil, err
	}
	return c, nil
}

// CreateProjectInput carries a create-project request.
type CreateProjectInput struct {
	Code        string
	CompanyCode string
	Name        string
	CreatedBy   string
}

// CreateProject validates and persists a new project under an Active company.
func (e Env) CreateProject(in CreateProjectInput) (*entity.Project, error) {
	company, err := e.Reg.Companies.FindByCode(in.CompanyCode)
	if err != nil {
		return nil, &UnknownParentError{Kind: "project", ParentKind: "company", ParentCode: in.CompanyCode}
	}
	if !company.AcceptsNewChildren() {
		return nil, &UnknownParentError{Kind: "project", ParentKind: "company", ParentCode: in.CompanyCode}
	}

	existing, err := e.Reg.WS.ProjectCodes(in.CompanyCode)
	if err != nil {
		return nil, err
	}
	code, err := resolveCode("project", in.Code, in.Name, existing)
	if err != nil {
		return nil, err
	}

	now := e.Clock.Now()
	p := entity.NewProject(ids.New(), code, in.CompanyCode, in.Name, in.CreatedBy, now)

	world, err := LoadWorld(e.Reg)
	if err != nil {
		return nil, err
	}
	world.Projects = append(world.Projects, validate.ProjectEntry{Project: p, CompanyCode: in.CompanyCode})
	result := validate.And(validate.IdentityRules, validate.ReferentialRules)(world)
	if result.HasErrors() {
		return nil, &ValidationFailedError{Violations: result}
	}

	if err := e.Reg.Projects.Save(p); err != nil {
		return nil, err
	}
	return p, nil
}

// CreateResourceInput carries a create-resource request. ProjectCode is
// empty for a company-scope resource.
type CreateResourceInput struct {
	Code         string
	CompanyCode  string
	ProjectCode  string
	Name         string
	ResourceType string
	CreatedBy    string
}

// CreateResource validates and persists a new company- or project-scope resource.
func (e Env) CreateResource(in CreateResourceInput) (*entity.Resource, error) {
	company, err := e.Reg.Companies.FindByCode(in.CompanyCode)
	if err != nil {
		return nil, &UnknownParentError{Kind: "resource", ParentKind: "company", ParentCode: in.CompanyCode}
	}
	if !company.AcceptsNewChildren() {
		return nil, &UnknownParentError{Kind: "resource", ParentKind: "company", ParentCode: in.CompanyCode}
	}

	var existingCodes []string
	var owningProjectID string
	if in.ProjectCode != "" {
		p, err := e.Reg.Projects.FindByCode(in.CompanyCode, in.ProjectCode)
		if err != nil {
			return nil, &UnknownParentError{Kind: "resource", ParentKind: "project", ParentCode: in.ProjectCode}
		}
		owningProjectID = p.ID
		existingCodes, err = e.Reg.WS.ProjectResourceCodes(in.CompanyCode, in.ProjectCode)
		if err != nil {
			return nil, err
		}
	} else {
		existingCodes, err = e.Reg.WS.CompanyResourceCodes(in.CompanyCode)
		if err != nil {
			return nil, err
		}
	}

	code, err := resolveCode("resource", in.Code, in.Name, existingCodes)
	if err != nil {
		return nil, err
	}

	now := e.Clock.Now()
	var r *entity.Resource
	if in.ProjectCode != "" {
		r = entity.NewProjectResource(ids.New(), code, in.Name, in.ResourceType, in.CompanyCode, owningProjectID, in.CreatedBy, now)
	} else {
		r = entity.NewCompanyResource(ids.New(), code, in.Name, in.ResourceType, in.CompanyCode, in.CreatedBy, now)
	}

	world, err := LoadWorld(e.Reg)
	if err != nil {
		return nil, err
	}
	if in.ProjectCode != "" {
		key := in.CompanyCode + "/" + in.ProjectCode
		world.ProjectResources[key] = append(world.ProjectResources[key], r)
	} else {
		world.CompanyResources[in.CompanyCode] = append(world.CompanyResources[in.CompanyCode], r)
	}
	result := validate.And(validate.IdentityRules, validate.ResourceTypeRule)(world)
	if result.HasErrors() {
		return nil, &ValidationFailedError{Violations: result}
	}

	if err := e.Reg.Resources.Save(in.CompanyCode, in.ProjectCode, r); err != nil {
		return nil, err
	}
	return r, nil
}

// CreateTaskInput carries a create-task request.
type CreateTaskInput struct {
	Code           string
	CompanyCode    string
	ProjectCode    string
	Name           string
	Start          time.Time
	Due            time.Time
	EstimatedHours float64
	CreatedBy      string
}

// CreateTask validates and persists a new task under a project.
func (e Env) CreateTask(in CreateTaskInput) (*entity.Task, error) {
	if _, err := e.Reg.Projects.FindByCode(in.CompanyCode, in.ProjectCode); err != nil {
		return nil, &UnknownParentError{Kind: "task", ParentKind: "project", ParentCode: in.ProjectCode}
	}

	existing, err := e.Reg.WS.TaskCodes(in.CompanyCode, in.ProjectCode)
	if err != nil {
		return nil, err
	}
	code, err := resolveCode("task", in.Code, in.Name, existing)
	if err != nil {
		return nil, err
	}

	now := e.Clock.Now()
	t := entity.NewTask(ids.New(), code, in.ProjectCode, in.Name, in.CreatedBy, in.Start, in.Due, in.EstimatedHours, now)

	world, err := LoadWorld(e.Reg)
	if err != nil {
		return nil, err
	}
	key := in.CompanyCode + "/" + in.ProjectCode
	world.Tasks[key] = append(world.Tasks[key], t)
	result := validate.And(validate.IdentityRules, validate.ReferentialRules, validate.TemporalRules)(world)
	if result.HasErrors() {
		return nil, &ValidationFailedError{Violations: result}
	}

	if err := e.Reg.Tasks.Save(in.CompanyCode, t); err != nil {
		return nil, err
	}
	return t, nil
}
