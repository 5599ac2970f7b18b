package repo

import (
	"github.com/taskrevolution/ttr/internal/codec"
	"github.com/taskrevolution/ttr/internal/entity"
)

// ProjectRepo loads and persists Project manifests.
type ProjectRepo struct {
	ws *Workspace
}

func (w *Workspace) Projects() *ProjectRepo { return &ProjectRepo{ws: w} }

// FindByCode loads companies/<companyCode>/projects/<code>/project.yaml.
func (r *ProjectRepo) FindByCode(companyCode, code string) (*entity.Project, error) {
	path := r.ws.ProjectManifestPath(companyCode, code)
	data, err := readFile(path)
	if err != nil {
		return nil, &NotFoundError{Kind: "project", Code: code}
	}
	p, _, err := codec.DecodeProject(path, data)
	if err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}
	return p, nil
}

// FindByID scans every project under companyCode for a matching id.
func (r *ProjectRepo) FindByID(companyCode, id string) (*entity.Project, error) {
	all, err := r.FindAll(companyCode)
	if err != nil {
		return nil, err
	}
	for _, p := range all {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, &NotFoundError{Kind: "project", Code: id}
}

// FindAll loads every project owned by companyCode.
func (r *ProjectRepo) FindAll(companyCode string) ([]*entity.Project, error) {
	codes, err := r.ws.ProjectCodes(companyCode)
	if err != nil {
		return nil, err
	}

	seen := map[string][]string{}
	var out []*entity.Project
	for _, dirCode := range codes {
		path := r.ws.ProjectManifestPath(companyCode, dirCode)
		data, err := readFile(path)
		if err != nil {
			continue
		}
		p, _, err := codec.DecodeProject(path, data)
		if err != nil {
			return nil, &DecodeError{Path: path, Err: err}
		}
		seen[p.Code] = append(seen[p.Code], path)
		out = append(out, p)
	}
	for code, paths := range seen {
		if len(paths) > 1 {
			return nil, &DuplicateCodeError{Kind: "project", Code: code, Paths: paths}
		}
	}
	return out, nil
}

// ProjectContext pairs a project with its owning company's code, the
// shape find_all_with_context returns per §4.C.
type ProjectContext struct {
	Project     *entity.Project
	CompanyCode string
}

// FindAllWithContext loads every project across the whole workspace.
func (r *ProjectRepo) FindAllWithContext(ws *Workspace) ([]ProjectContext, error) {
	companyCodes, err := ws.CompanyCodes()
	if err != nil {
		return nil, err
	}
	var out []ProjectContext
	for _, companyCode := range companyCodes {
		projects, err := r.FindAll(companyCode)
		if err != nil {
			return nil, err
		}
		for _, p := range projects {
			out = append(out, ProjectContext{Project: p, CompanyCode: companyCode})
		}
	}
	return out, nil
}

// Save creates or overwrites the project's manifest. SaveInHierarchy is an
// alias kept for call sites that want to be explicit about the owning
// company, matching §4.C's save_in_hierarchy contract; Project already
// carries CompanyCode so both forms write the same path.
func (r *ProjectRepo) Save(p *entity.Project) error {
	data, err := codec.EncodeProject(p)
	if err != nil {
		return err
	}
	return WriteAtomic(r.ws.ProjectManifestPath(p.CompanyCode, p.Code), data)
}

// SaveInHierarchy saves p under the given companyCode explicitly,
// overriding p.CompanyCode if it disagrees (used by code-rename flows
// that move a project to a corrected path before updating the field).
func (r *ProjectRepo) SaveInHierarchy(p *entity.Project, companyCode string) error {
	p.CompanyCode = companyCode
	return r.Save(p)
}
