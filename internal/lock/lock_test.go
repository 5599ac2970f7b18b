package lock

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAcquireThenReleaseAllowsReacquire(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".ttr.lock")

	l, err := Acquire(path, Exclusive, "validate")
	require.NoError(t, err)
	require.NoError(t, l.Release())

	_, err = os.Stat(path)
	require.True(t, os.IsNotExist(err))

	l2, err := Acquire(path, Exclusive, "create")
	require.NoError(t, err)
	require.NoError(t, l2.Release())
}

func TestExclusiveAcquireReentrantForSamePID(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".ttr.lock")

	l1, err := Acquire(path, Exclusive, "update")
	require.NoError(t, err)
	defer l1.Release()

	l2, err := Acquire(path, Exclusive, "update")
	require.NoError(t, err)
	defer l2.Release()
}

func TestStaleLockIsReclaimed(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".ttr.lock")

	require.NoError(t, writeAtomic(path, []byte(`{"pid":999999999,"mode":"exclusive","since":"2020-01-01T00:00:00Z","command":"create"}`)))

	l, err := Acquire(path, Exclusive, "create")
	require.NoError(t, err)
	require.NoError(t, l.Release())
}

func TestSharedAcquireDoesNotBlockAnotherShared(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".ttr.lock")

	// simulate another live process (this one) holding a shared lock by
	// writing the lock file directly under our own PID.
	require.NoError(t, writeAtomic(path, mustJSON(t, os.Getpid())))

	l, err := Acquire(path, Shared, "ls")
	require.NoError(t, err)
	require.NoError(t, l.Release())
}

func mustJSON(t *testing.T, pid int) []byte {
	t.Helper()
	return []byte(fmt.Sprintf(`{"pid":%d,"mode":"shared","since":"2026-01-01T00:00:00Z","command":"ls"}`, pid))
}
