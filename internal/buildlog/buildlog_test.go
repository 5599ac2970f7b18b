package buildlog

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewDefaultsToNop(t *testing.T) {
	logger := New()
	require.NotNil(t, logger)
	logger.Infow("should be silently dropped")
}

func TestNewOffIsNop(t *testing.T) {
	t.Setenv("TTR_LOG", "off")
	logger := New()
	require.NotNil(t, logger)
}

func TestNewValidLevel(t *testing.T) {
	t.Setenv("TTR_LOG", "debug")
	logger := New()
	require.NotNil(t, logger)
	logger.Debugw("debug diagnostics enabled")
}

func TestNewInvalidLevelFallsBackToInfo(t *testing.T) {
	t.Setenv("TTR_LOG", "not-a-level")
	logger := New()
	require.NotNil(t, logger)
}
