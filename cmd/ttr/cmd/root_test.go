package cmd

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/taskrevolution/ttr/internal/lock"
	"github.com/taskrevolution/ttr/internal/repo"
)

type testError struct{ msg string }

func (e *testError) Error() string { return e.msg }

var errBoom = &testError{"boom"}

func TestExitCodeNil(t *testing.T) {
	require.Equal(t, 0, exitCode(nil))
}

func TestExitCodeDecodeError(t *testing.T) {
	err := &repo.DecodeError{Path: "companies/ACME/company.yaml", Err: errBoom}
	require.Equal(t, 3, exitCode(err))
}

func TestExitCodeSystemErrors(t *testing.T) {
	require.Equal(t, 2, exitCode(&repo.IoError{Path: "x", Err: errBoom}))
	require.Equal(t, 2, exitCode(&repo.PartialWriteError{Written: nil, Remaining: []string{"x"}, Err: errBoom}))
	require.Equal(t, 2, exitCode(&lock.WorkspaceBusyError{PID: 1, Since: time.Now()}))
	require.Equal(t, 2, exitCode(&repo.ErrNoWorkspace{Start: "x"}))
}

func TestExitCodeDefaultsToOne(t *testing.T) {
	require.Equal(t, 1, exitCode(errBoom))
}

func TestParseTaskDates(t *testing.T) {
	start, due, err := parseTaskDates("2026-01-01", "2026-02-01")
	require.NoError(t, err)
	require.True(t, due.After(start))
}

func TestParseTaskDatesInvalid(t *testing.T) {
	_, _, err := parseTaskDates("not-a-date", "2026-02-01")
	require.Error(t, err)
}
