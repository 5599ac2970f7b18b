// Package cmd implements the CLI Adapter (§4.I): one cobra command per
// verb, registered in init() via rootCmd.AddCommand, grounded directly on
// the teacher's cmd/co/cmd package layout (var xCmd = &cobra.Command{...},
// persistent flags declared once in root.go).
package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/taskrevolution/ttr/internal/context"
	"github.com/taskrevolution/ttr/internal/lock"
	"github.com/taskrevolution/ttr/internal/repo"
)

var (
	workspaceFlag string
	jsonOut       bool
	jsonlOut      bool
	verbose       bool
	quiet         bool
)

var rootCmd = &cobra.Command{
	Use:   "ttr",
	Short: "TaskTaskRevolution - file-backed project management engine",
	Long: `TaskTaskRevolution manages Companies, Projects, Tasks, and Resources as
plain-text manifests under a workspace directory tree. Run "ttr init" to
create a new workspace, then "ttr create company/project/task/resource"
to populate it.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the CLI, returning the process exit code.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return exitCode(err)
	}
	return 0
}

func init() {
	rootCmd.PersistentFlags().StringVar(&workspaceFlag, "workspace", "", "workspace root (default: TTR_WORKSPACE env, or discovered from cwd)")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "output in JSON format")
	rootCmd.PersistentFlags().BoolVar(&jsonlOut, "jsonl", false, "output in JSON Lines format")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose internal diagnostics (sets TTR_LOG=debug unless already set)")
	rootCmd.PersistentFlags().BoolVar(&quiet, "quiet", false, "suppress non-error command output")

	cobra.OnInitialize(func() {
		if verbose && os.Getenv("TTR_LOG") == "" {
			os.Setenv("TTR_LOG", "debug")
		}
	})
}

// resolveContext resolves the ambient Company/Project/Resource scope for
// the current invocation (§4.D), honoring --workspace/TTR_WORKSPACE
// before falling back to a cwd-relative walk.
func resolveContext(ov context.Overrides) (*context.Context, error) {
	if workspaceFlag != "" {
		return context.Resolve(workspaceFlag, ov)
	}
	if env := os.Getenv("TTR_WORKSPACE"); env != "" {
		return context.Resolve(env, ov)
	}
	cwd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	return context.Resolve(cwd, ov)
}

// withLock acquires the workspace lock in the given mode, runs fn, and
// releases it regardless of fn's outcome (§5/§11 "mutating verbs acquire
// Exclusive, read-only verbs acquire Shared").
func withLock(ctx *context.Context, mode lock.Mode, command string, fn func(*repo.Registry) error) error {
	l, err := lock.Acquire(ctx.Registry().WS.LockPath(), mode, command)
	if err != nil {
		return err
	}
	defer l.Release()
	return fn(ctx.Registry())
}

// exitCode maps a typed error to the process exit code §4.I names:
// 0 success, 1 user/domain error, 2 system/IO/contention error, 3 decode
// (corrupt manifest) error. Grounded on the teacher's exitWithError
// helper in root.go, generalized from a fixed code to an error-type
// switch via errors.As.
func exitCode(err error) int {
	if err == nil {
		return 0
	}

	var decodeErr *repo.DecodeError
	if errors.As(err, &decodeErr) {
		return 3
	}

	var ioErr *repo.IoError
	var partialErr *repo.PartialWriteError
	var busyErr *lock.WorkspaceBusyError
	var noWorkspaceErr *repo.ErrNoWorkspace
	if errors.As(err, &ioErr) || errors.As(err, &partialErr) ||
		errors.As(err, &busyErr) || errors.As(err, &noWorkspaceErr) {
		return 2
	}

	return 1
}
