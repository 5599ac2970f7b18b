package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolveRootExplicit(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "config.yaml"), []byte("apiVersion: ttr/v1\n"), 0o644))

	got, found, err := ResolveRoot(root)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, root, got)
}

func TestResolveRootExplicitMissingConfig(t *testing.T) {
	dir := t.TempDir()

	got, found, err := ResolveRoot(dir)
	require.NoError(t, err)
	require.False(t, found)
	require.Equal(t, dir, got)
}

func TestResolveRootEnvVar(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "config.yaml"), []byte("apiVersion: ttr/v1\n"), 0o644))
	t.Setenv("TTR_WORKSPACE", root)

	got, found, err := ResolveRoot("")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, root, got)
}

func TestResolveRootDiscoversUpward(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "config.yaml"), []byte("apiVersion: ttr/v1\n"), 0o644))
	nested := filepath.Join(root, "companies", "ACME")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	cwd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(nested))
	t.Cleanup(func() { require.NoError(t, os.Chdir(cwd)) })

	got, found, err := ResolveRoot("")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, root, got)
}

func TestResolveRootNoWorkspaceFound(t *testing.T) {
	dir := t.TempDir()
	cwd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { require.NoError(t, os.Chdir(cwd)) })

	got, found, err := ResolveRoot("")
	require.NoError(t, err)
	require.False(t, found)
	require.Equal(t, dir, got)
}
