// Package config resolves the workspace root a CLI invocation runs
// against, following the precedence chain of §6: an explicit --workspace
// flag, then the TTR_WORKSPACE environment variable, then an upward
// directory walk from cwd for config.yaml. This mirrors the teacher's
// config.Load(explicitPath) search chain (explicit path -> env -> default
// location), adapted from a single fixed config file to a discoverable
// workspace root.
package config

import (
	"os"
	"path/filepath"

	"github.com/taskrevolution/ttr/internal/repo"
)

// ResolveRoot returns the workspace root to operate against. FoundConfig
// reports whether config.yaml actually exists there yet; commands other
// than `init` should treat FoundConfig==false as "no workspace here".
func ResolveRoot(explicit string) (root string, foundConfig bool, err error) {
	if explicit != "" {
		return checkRoot(explicit)
	}
	if env := os.Getenv("TTR_WORKSPACE"); env != "" {
		return checkRoot(env)
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", false, err
	}
	if discovered, err := repo.DiscoverRoot(cwd); err == nil {
		return discovered, true, nil
	}
	return cwd, false, nil
}

func checkRoot(dir string) (string, bool, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", false, err
	}
	if _, err := os.Stat(filepath.Join(abs, "config.yaml")); err == nil {
		return abs, true, nil
	}
	return abs, false, nil
}
