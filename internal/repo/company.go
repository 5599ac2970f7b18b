package repo

import (
	"github.com/taskrevolution/ttr/internal/codec"
	"github.com/taskrevolution/ttr/internal/entity"
)

// CompanyRepo loads and persists Company manifests.
type CompanyRepo struct {
	ws *Workspace
}

func (w *Workspace) Companies() *CompanyRepo { return &CompanyRepo{ws: w} }

// FindByCode loads the company at companies/<code>/company.yaml.
func (r *CompanyRepo) FindByCode(code string) (*entity.Company, error) {
	path := r.ws.CompanyManifestPath(code)
	data, err := readFile(path)
	if err != nil {
		return nil, &NotFoundError{Kind: "company", Code: code}
	}
	c, _, err := codec.DecodeCompany(path, data)
	if err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}
	return c, nil
}

// FindByID scans every company manifest for a matching id. Repositories
// are code-addressed on disk, so this is a linear scan (§4.C find_by_id).
func (r *CompanyRepo) FindByID(id string) (*entity.Company, error) {
	all, err := r.FindAll()
	if err != nil {
		return nil, err
	}
	for _, c := range all {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, &NotFoundError{Kind: "company", Code: id}
}

// FindAll loads every company in the workspace, failing with
// DuplicateCodeError if the directory scan finds two manifests claiming
// the same code (directories are already keyed by code, so this guards
// against a manually edited metadata.code that disagrees with its path).
func (r *CompanyRepo) FindAll() ([]*entity.Company, error) {
	codes, err := r.ws.CompanyCodes()
	if err != nil {
		return nil, err
	}

	seen := map[string][]string{}
	var out []*entity.Company
	for _, dirCode := range codes {
		path := r.ws.CompanyManifestPath(dirCode)
		data, err := readFile(path)
		if err != nil {
			continue // directory without a company.yaml is not a company
		}
		c, _, err := codec.DecodeCompany(path, data)
		if err != nil {
			return nil, &DecodeError{Path: path, Err: err}
		}
		seen[c.Code] = append(seen[c.Code], path)
		out = append(out, c)
	}
	for code, paths := range seen {
		if len(paths) > 1 {
			return nil, &DuplicateCodeError{Kind: "company", Code: code, Paths: paths}
		}
	}
	return out, nil
}

// Save creates or overwrites the company's manifest at its canonical path
// (§4.C "idempotent update": same code maps to the same file identity).
func (r *CompanyRepo) Save(c *entity.Company) error {
	data, err := codec.EncodeCompany(c)
	if err != nil {
		return err
	}
	return WriteAtomic(r.ws.CompanyManifestPath(c.Code), data)
}
