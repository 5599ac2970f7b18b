package repo

import (
	"github.com/taskrevolution/ttr/internal/codec"
	"github.com/taskrevolution/ttr/internal/entity"
)

// TaskRepo loads and persists Task manifests.
type TaskRepo struct {
	ws *Workspace
}

func (w *Workspace) Tasks() *TaskRepo { return &TaskRepo{ws: w} }

// FindByCode loads .../projects/<projectCode>/tasks/<code>.yaml.
func (r *TaskRepo) FindByCode(companyCode, projectCode, code string) (*entity.Task, error) {
	path := r.ws.TaskManifestPath(companyCode, projectCode, code)
	data, err := readFile(path)
	if err != nil {
		return nil, &NotFoundError{Kind: "task", Code: code}
	}
	t, _, err := codec.DecodeTask(path, data)
	if err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}
	return t, nil
}

// FindByID scans every task under a project for a matching id.
func (r *TaskRepo) FindByID(companyCode, projectCode, id string) (*entity.Task, error) {
	all, err := r.FindAll(companyCode, projectCode)
	if err != nil {
		return nil, err
	}
	for _, t := range all {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, &NotFoundError{Kind: "task", Code: id}
}

// FindAll loads every task owned by projectCode.
func (r *TaskRepo) FindAll(companyCode, projectCode string) ([]*entity.Task, error) {
	codes, err := r.ws.TaskCodes(companyCode, projectCode)
	if err != nil {
		return nil, err
	}

	seen := map[string][]string{}
	var out []*entity.Task
	for _, code := range codes {
		path := r.ws.TaskManifestPath(companyCode, projectCode, code)
		data, err := readFile(path)
		if err != nil {
			continue
		}
		t, _, err := codec.DecodeTask(path, data)
		if err != nil {
			return nil, &DecodeError{Path: path, Err: err}
		}
		seen[t.Code] = append(seen[t.Code], path)
		out = append(out, t)
	}
	for code, paths := range seen {
		if len(paths) > 1 {
			return nil, &DuplicateCodeError{Kind: "task", Code: code, Paths: paths}
		}
	}
	return out, nil
}

// Save creates or overwrites the task's manifest at its canonical path.
// The caller is responsible for ensuring t.ProjectCode names the project
// under companyCode (the Context Resolver / use-case layer resolves this,
// §4.D); Save itself trusts its inputs, matching the Repository Layer's
// role as a pure persistence mechanism rather than a second validator.
func (r *TaskRepo) Save(companyCode string, t *entity.Task) error {
	data, err := codec.EncodeTask(t)
	if err != nil {
		return err
	}
	return WriteAtomic(r.ws.TaskManifestPath(companyCode, t.ProjectCode, t.Code), data)
}
