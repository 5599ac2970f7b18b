package usecase

import "github.com/taskrevolution/ttr/internal/entity"

// DeleteCompany soft-deletes a company. Idempotent: deleting an already
// Inactive company returns the entity and an AlreadyDeletedWarning rather
// than failing (§4.E, invariant 7).
func (e Env) DeleteCompany(code string) (*entity.Company, error) {
	c, err := e.Reg.Companies.FindByCode(code)
	if err != nil {
		return nil, err
	}
	delErr := c.Deactivate(e.Clock.Now())
	if saveErr := e.Reg.Companies.Save(c); saveErr != nil {
		return nil, saveErr
	}
	return c, delErr
}

// DeleteProject soft-deletes a project (idempotent, same pattern as DeleteCompany).
func (e Env) DeleteProject(companyCode, code string) (*entity.Project, error) {
	p, err := e.Reg.Projects.FindByCode(companyCode, code)
	if err != nil {
		return nil, err
	}
	delErr := p.Delete(e.Clock.Now())
	if saveErr := e.Reg.Projects.Save(p); saveErr != nil {
		return nil, saveErr
	}
	return p, delErr
}

// DeleteTask soft-deletes a task (status -> Cancelled, file retained).
func (e Env) DeleteTask(companyCode, projectCode, code string) (*entity.Task, error) {
	t, err := e.Reg.Tasks.FindByCode(companyCode, projectCode, code)
	if err != nil {
		return nil, err
	}
	delErr := t.Delete(e.Clock.Now())
	if saveErr := e.Reg.Tasks.Save(companyCode, t); saveErr != nil {
		return nil, saveErr
	}
	return t, delErr
}

// DeleteResource soft-deletes a company- or project-scope resource.
func (e Env) DeleteResource(companyCode, projectCode, code string) (*entity.Resource, error) {
	r, err := e.Reg.Resources.Resolve(companyCode, projectCode, code)
	if err != nil {
		return nil, err
	}
	delErr := r.Deactivate(e.Clock.Now())
	ownerProject := ""
	if r.Scope == entity.ScopeProject {
		ownerProject = projectCode
	}
	if saveErr := e.Reg.Resources.Save(companyCode, ownerProject, r); saveErr != nil {
		return nil, saveErr
	}
	return r, delErr
}
