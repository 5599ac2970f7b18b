package codec_test

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"github.com/taskrevolution/ttr/internal/codec"
	"github.com/taskrevolution/ttr/internal/entity"
)

func TestCompanyRoundTrip(t *testing.T) {
	now := time.Date(2026, 1, 15, 9, 0, 0, 0, time.UTC)
	c := entity.NewCompany("id-1", "TECH-CORP", "Tech Corp", "manager@example.com", now)
	c.Description = "a widget company"

	out, err := codec.EncodeCompany(c)
	require.NoError(t, err)

	decoded, warnings, err := codec.DecodeCompany("company.yaml", out)
	require.NoError(t, err)
	require.Empty(t, warnings)

	if diff := cmp.Diff(c, decoded); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}

	reEncoded, err := codec.EncodeCompany(decoded)
	require.NoError(t, err)
	require.Equal(t, out, reEncoded, "encode . decode . encode must equal encode")
}

func TestTaskRoundTrip(t *testing.T) {
	now := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	due := now.AddDate(0, 0, 7)
	task := entity.NewTask("id-2", "SETUP", "proj-1", "Setup", "alice", now, due, 16, now)
	task.Predecessors = []string{"OTHER"}
	task.AssignedResources = []string{"DEV-1"}
	task.AddComment("alice", "started", now)

	out, err := codec.EncodeTask(task)
	require.NoError(t, err)

	decoded, _, err := codec.DecodeTask("task.yaml", out)
	require.NoError(t, err)

	if diff := cmp.Diff(task, decoded); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeUnknownKind(t *testing.T) {
	data := []byte("apiVersion: tasktaskrevolution.io/v1alpha1\nkind: Bogus\nmetadata:\n  id: x\nspec: {}\n")
	_, _, err := codec.DecodeCompany("bad.yaml", data)
	require.Error(t, err)
	var unknownKind *codec.UnknownKindError
	require.ErrorAs(t, err, &unknownKind)
}

func TestDecodeUnsupportedVersion(t *testing.T) {
	data := []byte("apiVersion: tasktaskrevolution.io/v9\nkind: Company\nmetadata:\n  id: x\nspec:\n  name: X\n  size: Small\n  status: Active\n")
	_, _, err := codec.DecodeCompany("bad.yaml", data)
	require.Error(t, err)
	var unsupported *codec.UnsupportedVersionError
	require.ErrorAs(t, err, &unsupported)
}

func TestDecodeInvalidSyntax(t *testing.T) {
	_, _, err := codec.DecodeCompany("bad.yaml", []byte("not: [valid"))
	require.Error(t, err)
	var invalid *codec.InvalidSyntaxError
	require.ErrorAs(t, err, &invalid)
}

func TestDecodeUnknownSpecFieldWarns(t *testing.T) {
	data := []byte("apiVersion: tasktaskrevolution.io/v1alpha1\nkind: Company\nmetadata:\n  id: x\nspec:\n  name: X\n  size: Small\n  status: Active\n  foundedYear: 1999\n")
	_, warnings, err := codec.DecodeCompany("bad.yaml", data)
	require.NoError(t, err)
	require.Len(t, warnings, 1)
	require.Equal(t, "foundedYear", warnings[0].Field)
}

func TestDecodeMissingRequiredField(t *testing.T) {
	data := []byte("apiVersion: tasktaskrevolution.io/v1alpha1\nkind: Company\nmetadata:\n  id: x\nspec:\n  size: Small\n  status: Active\n")
	_, _, err := codec.DecodeCompany("bad.yaml", data)
	require.Error(t, err)
	var schemaErr *codec.SchemaViolationError
	require.ErrorAs(t, err, &schemaErr)
}
