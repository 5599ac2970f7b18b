package search

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/taskrevolution/ttr/internal/entity"
	"github.com/taskrevolution/ttr/internal/validate"
)

func buildTestWorld() *validate.World {
	now := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	c := entity.NewCompany("c1", "ACME", "Acme Corp", "tester", now)
	p := entity.NewProject("p1", "WEBSITE", "ACME", "Website Revamp", "tester", now)
	t1 := entity.NewTask("t1", "DESIGN", "WEBSITE", "Design the homepage", "tester", now, now.AddDate(0, 0, 1), 8, now)
	r := entity.NewCompanyResource("r1", "DEV1", "Dana Developer", "Developer", "ACME", "tester", now)

	return &validate.World{
		Companies: []*entity.Company{c},
		Projects:  []validate.ProjectEntry{{Project: p, CompanyCode: "ACME"}},
		Tasks:     map[string][]*entity.Task{"ACME/WEBSITE": {t1}},
		CompanyResources: map[string][]*entity.Resource{
			"ACME": {r},
		},
		ProjectResources: map[string][]*entity.Resource{},
	}
}

func TestQueryMatchesByCode(t *testing.T) {
	idx := Build(buildTestWorld())
	results := idx.Query("DESIGN", 0)
	require.NotEmpty(t, results)
	require.Equal(t, KindTask, results[0].Kind)
	require.Equal(t, "DESIGN", results[0].Code)
	require.Equal(t, "ACME/WEBSITE/DESIGN", results[0].Path())
}

func TestQueryMatchesByName(t *testing.T) {
	idx := Build(buildTestWorld())
	results := idx.Query("homepage", 0)
	require.NotEmpty(t, results)
	require.Equal(t, "DESIGN", results[0].Code)
}

func TestQueryRespectsLimit(t *testing.T) {
	idx := Build(buildTestWorld())
	results := idx.Query("e", 1)
	require.Len(t, results, 1)
}

func TestQueryNoMatchReturnsEmpty(t *testing.T) {
	idx := Build(buildTestWorld())
	results := idx.Query("zzzzqqqq", 0)
	require.Empty(t, results)
}
