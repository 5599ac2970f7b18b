package usecase

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/taskrevolution/ttr/internal/clock"
	"github.com/taskrevolution/ttr/internal/repo"
	"github.com/taskrevolution/ttr/internal/schedule"
)

func newEnv(t *testing.T) Env {
	t.Helper()
	root := t.TempDir()
	reg := repo.Open(root)
	now := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	env := Env{Reg: reg, Clock: clock.Fixed(now)}

	_, err := env.Init(InitInput{ManagerName: "Mgr", ManagerEmail: "mgr@example.com", CreatedBy: "tester"})
	require.NoError(t, err)

	for _, dir := range []string{reg.WS.CompaniesDir()} {
		require.NoError(t, os.MkdirAll(dir, 0o755))
	}
	return env
}

func TestInitRefusesWithoutForce(t *testing.T) {
	env := newEnv(t)
	_, err := env.Init(InitInput{ManagerName: "Mgr", ManagerEmail: "mgr@example.com", CreatedBy: "tester"})
	require.Error(t, err)
}

func TestCreateCompanyGeneratesCode(t *testing.T) {
	env := newEnv(t)
	c, err := env.CreateCompany(CreateCompanyInput{Name: "Acme Corp", CreatedBy: "tester"})
	require.NoError(t, err)
	require.Equal(t, "ACME_CORP", c.Code)
}

func TestCreateCompanyRejectsDuplicateExplicitCode(t *testing.T) {
	env := newEnv(t)
	_, err := env.CreateCompany(CreateCompanyInput{Code: "ACME", Name: "Acme", CreatedBy: "tester"})
	require.NoError(t, err)

	_, err = env.CreateCompany(CreateCompanyInput{Code: "ACME", Name: "Acme Two", CreatedBy: "tester"})
	require.Error(t, err)
	var dup *DuplicateCodeError
	require.ErrorAs(t, err, &dup)
}

func TestCreateProjectRequiresLiveCompany(t *testing.T) {
	env := newEnv(t)
	_, err := env.CreateProject(CreateProjectInput{Code: "WEB", CompanyCode: "GHOST", Name: "Website", CreatedBy: "tester"})
	require.Error(t, err)
	var unknown *UnknownParentError
	require.ErrorAs(t, err, &unknown)
}

func TestFullCreateLinkValidateFlow(t *testing.T) {
	env := newEnv(t)

	c, err := env.CreateCompany(CreateCompanyInput{Code: "ACME", Name: "Acme", CreatedBy: "tester"})
	require.NoError(t, err)

	p, err := env.CreateProject(CreateProjectInput{Code: "WEBSITE", CompanyCode: c.Code, Name: "Website", CreatedBy: "tester"})
	require.NoError(t, err)

	start := time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC)
	due := time.Date(2026, 1, 6, 9, 0, 0, 0, time.UTC)
	a, err := env.CreateTask(CreateTaskInput{Code: "DESIGN", CompanyCode: c.Code, ProjectCode: p.Code, Name: "Design", Start: start, Due: due, EstimatedHours: 8, CreatedBy: "tester"})
	require.NoError(t, err)

	b, err := env.CreateTask(CreateTaskInput{Code: "BUILD", CompanyCode: c.Code, ProjectCode: p.Code, Name: "Build", Start: start, Due: due, EstimatedHours: 8, CreatedBy: "tester"})
	require.NoError(t, err)

	_, err = env.LinkTasks(c.Code, p.Code, a.Code, b.Code)
	require.NoError(t, err)

	result, err := env.Validate()
	require.NoError(t, err)
	require.False(t, result.HasErrors())
}

func TestLinkTasksRejectsCycle(t *testing.T) {
	env := newEnv(t)

	c, err := env.CreateCompany(CreateCompanyInput{Code: "ACME", Name: "Acme", CreatedBy: "tester"})
	require.NoError(t, err)

	p, err := env.CreateProject(CreateProjectInput{Code: "WEBSITE", CompanyCode: c.Code, Name: "Website", CreatedBy: "tester"})
	require.NoError(t, err)

	start := time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC)
	due := time.Date(2026, 1, 6, 9, 0, 0, 0, time.UTC)
	a, err := env.CreateTask(CreateTaskInput{Code: "A", CompanyCode: c.Code, ProjectCode: p.Code, Name: "A", Start: start, Due: due, EstimatedHours: 8, CreatedBy: "tester"})
	require.NoError(t, err)

	b, err := env.CreateTask(CreateTaskInput{Code: "B", CompanyCode: c.Code, ProjectCode: p.Code, Name: "B", Start: start, Due: due, EstimatedHours: 8, CreatedBy: "tester"})
	require.NoError(t, err)

	_, err = env.LinkTasks(c.Code, p.Code, a.Code, b.Code)
	require.NoError(t, err)

	// B already depends on A; linking B as a predecessor of A must be
	// rejected, and must not touch A's persisted predecessor list.
	_, err = env.LinkTasks(c.Code, p.Code, b.Code, a.Code)
	require.Error(t, err)
	var cyclic *schedule.CycleDetectedError
	require.ErrorAs(t, err, &cyclic)

	reloaded, err := env.Reg.Tasks.FindByCode(c.Code, p.Code, a.Code)
	require.NoError(t, err)
	require.Empty(t, reloaded.Predecessors)
}

func TestAssignResourceValidatesCandidatePostState(t *testing.T) {
	env := newEnv(t)

	c, err := env.CreateCompany(CreateCompanyInput{Code: "ACME", Name: "Acme", CreatedBy: "tester"})
	require.NoError(t, err)

	p, err := env.CreateProject(CreateProjectInput{Code: "WEBSITE", CompanyCode: c.Code, Name: "Website", CreatedBy: "tester"})
	require.NoError(t, err)

	cfg, err := env.Reg.Config.Load()
	require.NoError(t, err)
	cfg.MaxActiveTasks = 1
	require.NoError(t, env.Reg.Config.Save(cfg))

	start := time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC)
	due := time.Date(2026, 1, 9, 9, 0, 0, 0, time.UTC)
	a, err := env.CreateTask(CreateTaskInput{Code: "A", CompanyCode: c.Code, ProjectCode: p.Code, Name: "A", Start: start, Due: due, EstimatedHours: 8, CreatedBy: "tester"})
	require.NoError(t, err)
	b, err := env.CreateTask(CreateTaskInput{Code: "B", CompanyCode: c.Code, ProjectCode: p.Code, Name: "B", Start: start, Due: due, EstimatedHours: 8, CreatedBy: "tester"})
	require.NoError(t, err)

	r, err := env.CreateResource(CreateResourceInput{Code: "DEV", CompanyCode: c.Code, ProjectCode: p.Code, Name: "Dev", ResourceType: "Developer", CreatedBy: "tester"})
	require.NoError(t, err)

	_, err = env.AssignResource(AssignResourceInput{CompanyCode: c.Code, ProjectCode: p.Code, TaskCode: a.Code, ResourceCode: r.Code})
	require.NoError(t, err)

	// The resource is already overlapping task A; assigning it to
	// overlapping task B pushes it past the WIP limit of 1. The warning
	// must surface against this call's own candidate state, not a stale
	// on-disk snapshot that predates the first assignment.
	result, err := env.AssignResource(AssignResourceInput{CompanyCode: c.Code, ProjectCode: p.Code, TaskCode: b.Code, ResourceCode: r.Code})
	require.NoError(t, err)
	require.NotEmpty(t, result.Violations)
}
