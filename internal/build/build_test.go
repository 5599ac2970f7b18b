package build

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/taskrevolution/ttr/internal/entity"
	"github.com/taskrevolution/ttr/internal/repo"
	"github.com/taskrevolution/ttr/internal/schedule"
)

func seedWorkspace(t *testing.T) *repo.Registry {
	t.Helper()
	root := t.TempDir()
	reg := repo.Open(root)
	now := time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC)

	require.NoError(t, reg.Config.Save(entity.NewConfig("Mgr", "mgr@example.com", "tester", now)))

	c := entity.NewCompany("c1", "ACME", "Acme Corp", "tester", now)
	require.NoError(t, reg.Companies.Save(c))

	p := entity.NewProject("p1", "WEBSITE", "ACME", "Website", "tester", now)
	require.NoError(t, reg.Projects.Save(p))

	r := entity.NewCompanyResource("r1", "DEV1", "Dev One", "Developer", "ACME", "tester", now)
	require.NoError(t, reg.Resources.SaveCompanyScoped("ACME", r))

	start := now
	due := now.AddDate(0, 0, 3)
	a := entity.NewTask("t1", "DESIGN", "WEBSITE", "Design", "tester", start, due, 8, now)
	a.AssignedResources = []string{"DEV1"}
	require.NoError(t, reg.Tasks.Save("ACME", a))

	b := entity.NewTask("t2", "BUILD", "WEBSITE", "Build", "tester", start, due, 16, now)
	b.Predecessors = []string{"DESIGN"}
	require.NoError(t, reg.Tasks.Save("ACME", b))

	return reg
}

func TestBuildWritesNavigableTree(t *testing.T) {
	reg := seedWorkspace(t)
	outDir := filepath.Join(t.TempDir(), "site")

	report, err := Build(reg, Options{OutDir: outDir})
	require.NoError(t, err)
	require.Greater(t, report.PagesWritten, 0)

	for _, rel := range []string{
		"index.html",
		filepath.Join("companies", "ACME", "index.html"),
		filepath.Join("companies", "ACME", "gantt.html"),
		filepath.Join("companies", "ACME", "projects", "WEBSITE", "index.html"),
		filepath.Join("companies", "ACME", "projects", "WEBSITE", "gantt.html"),
		filepath.Join("companies", "ACME", "projects", "WEBSITE", "tasks", "DESIGN.html"),
		filepath.Join("companies", "ACME", "resources", "DEV1.html"),
		filepath.Join("assets", "style.css"),
	} {
		_, err := os.Stat(filepath.Join(outDir, rel))
		require.NoError(t, err, "expected %s to exist", rel)
	}
}

func TestBuildProducesNoBrokenLocalLinks(t *testing.T) {
	reg := seedWorkspace(t)
	outDir := filepath.Join(t.TempDir(), "site")

	_, err := Build(reg, Options{OutDir: outDir, Concurrency: 2})
	require.NoError(t, err)
}

func TestRenderGanttSVGOrdersTasksTopologically(t *testing.T) {
	now := time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC)
	cfg := entity.NewConfig("Mgr", "mgr@example.com", "tester", now)
	cal := schedule.NewCalendar(cfg)

	a := entity.NewTask("t1", "DESIGN", "WEBSITE", "Design", "tester", now, now.AddDate(0, 0, 1), 8, now)
	b := entity.NewTask("t2", "BUILD", "WEBSITE", "Build", "tester", now, now.AddDate(0, 0, 1), 8, now)
	b.Predecessors = []string{"DESIGN"}

	svg, err := renderGanttSVG([]*entity.Task{b, a}, cal, nil)
	require.NoError(t, err)
	require.Contains(t, svg, "<svg")
	require.Contains(t, svg, "DESIGN")
	require.Contains(t, svg, "BUILD")
	require.Less(t, strings.Index(svg, "DESIGN"), strings.Index(svg, "BUILD"))
}
