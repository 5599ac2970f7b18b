package context

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func newWorkspace(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "config.yaml"), []byte("apiVersion: ttr/v1\n"), 0o644))
	dirs := []string{
		filepath.Join(root, "companies", "ACME", "projects", "WEBSITE", "resources"),
		filepath.Join(root, "companies", "ACME", "resources"),
	}
	for _, d := range dirs {
		require.NoError(t, os.MkdirAll(d, 0o755))
	}
	return root
}

func TestResolveWorkspaceScope(t *testing.T) {
	root := newWorkspace(t)
	ctx, err := Resolve(root, Overrides{})
	require.NoError(t, err)
	require.Equal(t, Workspace, ctx.Kind)
	require.Equal(t, root, ctx.Root)
}

func TestResolveCompanyScopeFromPath(t *testing.T) {
	root := newWorkspace(t)
	cwd := filepath.Join(root, "companies", "ACME")
	ctx, err := Resolve(cwd, Overrides{})
	require.NoError(t, err)
	require.Equal(t, CompanyScope, ctx.Kind)
	require.Equal(t, "ACME", ctx.CompanyCode)
}

func TestResolveProjectScopeFromPath(t *testing.T) {
	root := newWorkspace(t)
	cwd := filepath.Join(root, "companies", "ACME", "projects", "WEBSITE")
	ctx, err := Resolve(cwd, Overrides{})
	require.NoError(t, err)
	require.Equal(t, ProjectScope, ctx.Kind)
	require.Equal(t, "ACME", ctx.CompanyCode)
	require.Equal(t, "WEBSITE", ctx.ProjectCode)
}

func TestResolveResourceScopeFromProjectPath(t *testing.T) {
	root := newWorkspace(t)
	cwd := filepath.Join(root, "companies", "ACME", "projects", "WEBSITE", "resources")
	ctx, err := Resolve(cwd, Overrides{})
	require.NoError(t, err)
	require.Equal(t, ResourceScope, ctx.Kind)
	require.Equal(t, "ACME", ctx.CompanyCode)
	require.Equal(t, "WEBSITE", ctx.ProjectCode)
}

func TestResolveOverrideAgreesWithPath(t *testing.T) {
	root := newWorkspace(t)
	cwd := filepath.Join(root, "companies", "ACME")
	ctx, err := Resolve(cwd, Overrides{Company: "ACME"})
	require.NoError(t, err)
	require.Equal(t, "ACME", ctx.CompanyCode)
}

func TestResolveOverrideConflictsWithPath(t *testing.T) {
	root := newWorkspace(t)
	cwd := filepath.Join(root, "companies", "ACME")
	_, err := Resolve(cwd, Overrides{Company: "OTHER"})
	require.Error(t, err)
	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
	require.Equal(t, "company", conflict.Field)
}

func TestResolveOverrideFromWorkspaceRoot(t *testing.T) {
	root := newWorkspace(t)
	ctx, err := Resolve(root, Overrides{Company: "ACME", Project: "WEBSITE"})
	require.NoError(t, err)
	require.Equal(t, ProjectScope, ctx.Kind)
	require.Equal(t, "ACME", ctx.CompanyCode)
	require.Equal(t, "WEBSITE", ctx.ProjectCode)
}

func TestResolveNoWorkspace(t *testing.T) {
	dir := t.TempDir()
	_, err := Resolve(dir, Overrides{})
	require.Error(t, err)
}
