package repo

import (
	"github.com/taskrevolution/ttr/internal/codec"
	"github.com/taskrevolution/ttr/internal/entity"
)

// ResourceRepo loads and persists company- and project-scope Resource
// manifests.
type ResourceRepo struct {
	ws *Workspace
}

func (w *Workspace) Resources() *ResourceRepo { return &ResourceRepo{ws: w} }

// FindCompanyScoped loads companies/<companyCode>/resources/<code>.yaml.
func (r *ResourceRepo) FindCompanyScoped(companyCode, code string) (*entity.Resource, error) {
	return r.decode(r.ws.CompanyResourceManifestPath(companyCode, code), code)
}

// FindProjectScoped loads .../projects/<projectCode>/resources/<code>.yaml.
func (r *ResourceRepo) FindProjectScoped(companyCode, projectCode, code string) (*entity.Resource, error) {
	return r.decode(r.ws.ProjectResourceManifestPath(companyCode, projectCode, code), code)
}

func (r *ResourceRepo) decode(path, code string) (*entity.Resource, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, &NotFoundError{Kind: "resource", Code: code}
	}
	res, _, err := codec.DecodeResource(path, data)
	if err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}
	return res, nil
}

// Resolve looks a resource code up the way a Task's assignedResources
// entry is resolved (§3.1 "resolvable in company or project scope"):
// project scope is checked first and shadows a company-scope resource
// declaring the same code (DESIGN.md Open Question decision #2), falling
// back to company scope so the lookup is always total within a project's
// reachable set rather than ambiguous.
func (r *ResourceRepo) Resolve(companyCode, projectCode, code string) (*entity.Resource, error) {
	if projectCode != "" {
		if res, err := r.FindProjectScoped(companyCode, projectCode, code); err == nil {
			return res, nil
		}
	}
	return r.FindCompanyScoped(companyCode, code)
}

// FindAllCompanyScoped loads every company-scope resource under companyCode.
func (r *ResourceRepo) FindAllCompanyScoped(companyCode string) ([]*entity.Resource, error) {
	codes, err := r.ws.CompanyResourceCodes(companyCode)
	if err != nil {
		return nil, err
	}
	return r.loadAll(codes, func(code string) string {
		return r.ws.CompanyResourceManifestPath(companyCode, code)
	})
}

// FindAllProjectScoped loads every project-scope resource under projectCode.
func (r *ResourceRepo) FindAllProjectScoped(companyCode, projectCode string) ([]*entity.Resource, error) {
	codes, err := r.ws.ProjectResourceCodes(companyCode, projectCode)
	if err != nil {
		return nil, err
	}
	return r.loadAll(codes, func(code string) string {
		return r.ws.ProjectResourceManifestPath(companyCode, projectCode, code)
	})
}

func (r *ResourceRepo) loadAll(codes []string, pathFor func(string) string) ([]*entity.Resource, error) {
	seen := map[string][]string{}
	var out []*entity.Resource
	for _, dirCode := range codes {
		path := pathFor(dirCode)
		data, err := readFile(path)
		if err != nil {
			continue
		}
		res, _, err := codec.DecodeResource(path, data)
		if err != nil {
			return nil, &DecodeError{Path: path, Err: err}
		}
		seen[res.Code] = append(seen[res.Code], path)
		out = append(out, res)
	}
	for code, paths := range seen {
		if len(paths) > 1 {
			return nil, &DuplicateCodeError{Kind: "resource", Code: code, Paths: paths}
		}
	}
	return out, nil
}

// SaveCompanyScoped persists a company-scope resource.
func (r *ResourceRepo) SaveCompanyScoped(companyCode string, res *entity.Resource) error {
	data, err := codec.EncodeResource(res)
	if err != nil {
		return err
	}
	return WriteAtomic(r.ws.CompanyResourceManifestPath(companyCode, res.Code), data)
}

// SaveProjectScoped persists a project-scope resource.
func (r *ResourceRepo) SaveProjectScoped(companyCode, projectCode string, res *entity.Resource) error {
	data, err := codec.EncodeResource(res)
	if err != nil {
		return err
	}
	return WriteAtomic(r.ws.ProjectResourceManifestPath(companyCode, projectCode, res.Code), data)
}

// Save dispatches to the company- or project-scope writer based on the
// resource's own Scope tag.
func (r *ResourceRepo) Save(companyCode, projectCode string, res *entity.Resource) error {
	if res.Scope == entity.ScopeProject {
		return r.SaveProjectScoped(companyCode, projectCode, res)
	}
	return r.SaveCompanyScoped(companyCode, res)
}
