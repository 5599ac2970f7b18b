// Package context resolves the ambient scope a CLI invocation runs in:
// which workspace, and within it which company/project/resource the
// current directory (or an explicit override flag) names (§4.D).
package context

import (
	"path/filepath"
	"strings"

	"github.com/taskrevolution/ttr/internal/repo"
)

// Kind names which scope a Context was resolved to.
type Kind int

const (
	Workspace Kind = iota
	CompanyScope
	ProjectScope
	ResourceScope
)

// Context is the resolved ambient scope for one CLI invocation.
type Context struct {
	Kind        Kind
	Root        string
	CompanyCode string
	ProjectCode string
	ResourceCode string
}

// Overrides carries the explicit --company/--project/--resource flags a
// command may supply, which take precedence over path-derived scope and
// must agree with it when both are present (§4.D, §6).
type Overrides struct {
	Company  string
	Project  string
	Resource string
}

// Resolve walks cwd upward to find the workspace root, then matches cwd's
// position relative to root against the companies/<C>[/projects/<P>
// [/resources[/<R>]]|/resources[/<R>]] layout, generalized from the teacher's
// config-path search chain (look in a fixed set of locations) into "walk
// upward from cwd until config.yaml is found".
func Resolve(cwd string, ov Overrides) (*Context, error) {
	root, err := repo.DiscoverRoot(cwd)
	if err != nil {
		return nil, err
	}
	absCwd, err := filepath.Abs(cwd)
	if err != nil {
		return nil, err
	}

	ctx := &Context{Kind: Workspace, Root: root}

	rel, err := filepath.Rel(root, absCwd)
	if err == nil && rel != "." {
		parts := strings.Split(filepath.ToSlash(rel), "/")
		applyPathScope(ctx, parts)
	}

	if err := applyOverrides(ctx, ov); err != nil {
		return nil, err
	}
	return ctx, nil
}

// applyPathScope fills in ctx from a path already known to sit under root,
// split on "/". A path outside companies/<C> leaves ctx at Workspace
// scope, and path components past a recognized prefix that match no
// layout are ignored, keeping the scope that prefix gave, rather than
// erroring: a stray file or directory under the workspace is not itself
// a scope violation, only an ambiguous one the caller must disambiguate
// with an explicit flag. A resources directory yields ResourceScope even
// without a resource code after it.
func applyPathScope(ctx *Context, parts []string) {
	// companies/<C>/...
	if len(parts) < 2 || parts[0] != "companies" {
		return
	}
	ctx.Kind = CompanyScope
	ctx.CompanyCode = parts[1]

	if len(parts) < 3 {
		return
	}
	switch parts[2] {
	case "resources":
		ctx.Kind = ResourceScope
		if len(parts) >= 4 {
			ctx.ResourceCode = parts[3]
		}
	case "projects":
		if len(parts) < 4 {
			return
		}
		ctx.Kind = ProjectScope
		ctx.ProjectCode = parts[3]
		if len(parts) >= 5 && parts[4] == "resources" {
			ctx.Kind = ResourceScope
			if len(parts) >= 6 {
				ctx.ResourceCode = parts[5]
			}
		}
	}
}

// applyOverrides merges explicit flags into ctx, raising ContextConflictError
// when a flag names a different company/project than the path-derived one.
func applyOverrides(ctx *Context, ov Overrides) error {
	if ov.Company != "" {
		if ctx.CompanyCode != "" && ctx.CompanyCode != ov.Company {
			return &ConflictError{Field: "company", Path: ctx.CompanyCode, Flag: ov.Company}
		}
		ctx.CompanyCode = ov.Company
		if ctx.Kind == Workspace {
			ctx.Kind = CompanyScope
		}
	}
	if ov.Project != "" {
		if ctx.ProjectCode != "" && ctx.ProjectCode != ov.Project {
			return &ConflictError{Field: "project", Path: ctx.ProjectCode, Flag: ov.Project}
		}
		ctx.ProjectCode = ov.Project
		if ctx.Kind == Workspace || ctx.Kind == CompanyScope {
			ctx.Kind = ProjectScope
		}
	}
	if ov.Resource != "" {
		if ctx.ResourceCode != "" && ctx.ResourceCode != ov.Resource {
			return &ConflictError{Field: "resource", Path: ctx.ResourceCode, Flag: ov.Resource}
		}
		ctx.ResourceCode = ov.Resource
		ctx.Kind = ResourceScope
	}
	return nil
}

// Registry opens the repo.Registry rooted at ctx.Root, the handle every
// use-case orchestrator is given alongside a resolved Context.
func (c *Context) Registry() *repo.Registry { return repo.Open(c.Root) }
