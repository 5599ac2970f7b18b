package repo

import (
	"os"
	"path/filepath"
	"strings"
)

// ErrNoWorkspace is returned by DiscoverRoot when no config.yaml is found
// walking up from start to the filesystem root.
type ErrNoWorkspace struct{ Start string }

func (e *ErrNoWorkspace) Error() string {
	return "no workspace found (no config.yaml) above " + e.Start
}

// Workspace resolves canonical on-disk paths for the layout in §4.C:
//
//	<root>/
//	  config.yaml
//	  companies/<COMPANY_CODE>/
//	    company.yaml
//	    resources/<RESOURCE_CODE>.yaml
//	    projects/<PROJECT_CODE>/
//	      project.yaml
//	      resources/<RESOURCE_CODE>.yaml
//	      tasks/<TASK_CODE>.yaml
type Workspace struct {
	Root string
}

// New wraps an already-resolved workspace root.
func New(root string) *Workspace { return &Workspace{Root: root} }

// DiscoverRoot walks upward from start until it finds a directory
// containing config.yaml (§6 "a directory is a workspace iff it contains
// config.yaml at its root").
func DiscoverRoot(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", err
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "config.yaml")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", &ErrNoWorkspace{Start: start}
		}
		dir = parent
	}
}

func (w *Workspace) ConfigPath() string { return filepath.Join(w.Root, "config.yaml") }

func (w *Workspace) LockPath() string { return filepath.Join(w.Root, ".ttr.lock") }

func (w *Workspace) CacheDir() string { return filepath.Join(w.Root, ".ttr", "cache") }

func (w *Workspace) CompaniesDir() string { return filepath.Join(w.Root, "companies") }

func (w *Workspace) CompanyDir(companyCode string) string {
	return filepath.Join(w.CompaniesDir(), companyCode)
}

func (w *Workspace) CompanyManifestPath(companyCode string) string {
	return filepath.Join(w.CompanyDir(companyCode), "company.yaml")
}

func (w *Workspace) CompanyResourcesDir(companyCode string) string {
	return filepath.Join(w.CompanyDir(companyCode), "resources")
}

func (w *Workspace) CompanyResourceManifestPath(companyCode, resourceCode string) string {
	return filepath.Join(w.CompanyResourcesDir(companyCode), resourceCode+".yaml")
}

func (w *Workspace) ProjectsDir(companyCode string) string {
	return filepath.Join(w.CompanyDir(companyCode), "projects")
}

func (w *Workspace) ProjectDir(companyCode, projectCode string) string {
	return filepath.Join(w.ProjectsDir(companyCode), projectCode)
}

func (w *Workspace) ProjectManifestPath(companyCode, projectCode string) string {
	return filepath.Join(w.ProjectDir(companyCode, projectCode), "project.yaml")
}

func (w *Workspace) ProjectResourcesDir(companyCode, projectCode string) string {
	return filepath.Join(w.ProjectDir(companyCode, projectCode), "resources")
}

func (w *Workspace) ProjectResourceManifestPath(companyCode, projectCode, resourceCode string) string {
	return filepath.Join(w.ProjectResourcesDir(companyCode, projectCode), resourceCode+".yaml")
}

func (w *Workspace) TasksDir(companyCode, projectCode string) string {
	return filepath.Join(w.ProjectDir(companyCode, projectCode), "tasks")
}

func (w *Workspace) TaskManifestPath(companyCode, projectCode, taskCode string) string {
	return filepath.Join(w.TasksDir(companyCode, projectCode), taskCode+".yaml")
}

// listEntries returns the base names of YAML manifest files (or, when
// wantDirs is true, subdirectories) directly inside dir. Symlinks and
// hidden (dot-prefixed) entries are skipped per §4.C "Discovery: symlinks
// not followed; hidden directories skipped" — the same discipline the
// teacher's fs.ListWorkspaces/fs.CalculateSize apply via WalkDir.
func listEntries(dir string, wantDirs bool) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, &IoError{Path: dir, Err: err}
	}

	var out []string
	for _, e := range entries {
		name := e.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		if e.Type()&os.ModeSymlink != 0 {
			continue
		}
		if wantDirs {
			if e.IsDir() {
				out = append(out, name)
			}
			continue
		}
		if !e.IsDir() && strings.HasSuffix(name, ".yaml") {
			out = append(out, strings.TrimSuffix(name, ".yaml"))
		}
	}
	return out, nil
}

// CompanyCodes lists every company scope directory under companies/.
func (w *Workspace) CompanyCodes() ([]string, error) {
	return listEntries(w.CompaniesDir(), true)
}

// ProjectCodes lists every project directory under a company.
func (w *Workspace) ProjectCodes(companyCode string) ([]string, error) {
	return listEntries(w.ProjectsDir(companyCode), true)
}

// TaskCodes lists every task manifest code under a project.
func (w *Workspace) TaskCodes(companyCode, projectCode string) ([]string, error) {
	return listEntries(w.TasksDir(companyCode, projectCode), false)
}

// CompanyResourceCodes lists every company-scope resource code.
func (w *Workspace) CompanyResourceCodes(companyCode string) ([]string, error) {
	return listEntries(w.CompanyResourcesDir(companyCode), false)
}

// ProjectResourceCodes lists every project-scope resource code.
func (w *Workspace) ProjectResourceCodes(companyCode, projectCode string) ([]string, error) {
	return listEntries(w.ProjectResourcesDir(companyCode, projectCode), false)
}
