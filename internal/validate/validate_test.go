package validate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/taskrevolution/ttr/internal/entity"
)

var fixedNow = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func TestIdentityRulesFlagsBadCodeAndDuplicate(t *testing.T) {
	c1 := entity.NewCompany("id-1", "bad code", "Acme", "tester", fixedNow)
	c2 := entity.NewCompany("id-2", "ACME", "Acme", "tester", fixedNow)
	c3 := entity.NewCompany("id-3", "ACME", "Acme Two", "tester", fixedNow)
	w := &World{Companies: []*entity.Company{c1, c2, c3}}

	result := IdentityRules(w)
	require.True(t, result.HasErrors())

	var sawBadCode, sawDup bool
	for _, v := range result {
		if v.Message == `company code "bad code" is not a valid upper-snake code` {
			sawBadCode = true
		}
		if v.Category == "company.identity" && v.Pointer.Code == "ACME" {
			sawDup = true
		}
	}
	require.True(t, sawBadCode)
	require.True(t, sawDup)
}

func TestReferentialRulesFlagsUnknownCompany(t *testing.T) {
	p := entity.NewProject("pid", "WEBSITE", "GHOST", "Website", "tester", fixedNow)
	w := &World{Projects: []ProjectEntry{{Project: p, CompanyCode: "GHOST"}}}

	result := ReferentialRules(w)
	require.True(t, result.HasErrors())
}

func TestReferentialRulesAllowsLiveCompany(t *testing.T) {
	c := entity.NewCompany("id-1", "ACME", "Acme", "tester", fixedNow)
	p := entity.NewProject("pid", "WEBSITE", "ACME", "Website", "tester", fixedNow)
	w := &World{
		Companies: []*entity.Company{c},
		Projects:  []ProjectEntry{{Project: p, CompanyCode: "ACME"}},
	}

	result := ReferentialRules(w)
	require.True(t, result.Satisfied())
}

func TestTemporalRulesFlagsTaskOutsideProjectWindow(t *testing.T) {
	start := fixedNow
	end := fixedNow.AddDate(0, 1, 0)
	p := entity.NewProject("pid", "WEBSITE", "ACME", "Website", "tester", fixedNow)
	p.StartDate, p.EndDate = &start, &end

	taskStart := fixedNow.AddDate(0, 2, 0)
	taskDue := fixedNow.AddDate(0, 3, 0)
	task := entity.NewTask("tid", "DESIGN", "WEBSITE", "Design", "tester", taskStart, taskDue, 8, fixedNow)

	w := &World{
		Projects: []ProjectEntry{{Project: p, CompanyCode: "ACME"}},
		Tasks:    map[string][]*entity.Task{"ACME/WEBSITE": {task}},
	}

	result := TemporalRules(w)
	require.False(t, result.Satisfied())
}

func TestResourceTypeRuleFlagsUndeclaredType(t *testing.T) {
	cfg := entity.NewConfig("Mgr", "mgr@example.com", "tester", fixedNow)
	r := entity.NewCompanyResource("rid", "DEV1", "Dev One", "Astronaut", "ACME", "tester", fixedNow)
	w := &World{Config: cfg, CompanyResources: map[string][]*entity.Resource{"ACME": {r}}}

	result := ResourceTypeRule(w)
	require.True(t, result.HasErrors())
}

func TestVacationRulesFlagsOverlap(t *testing.T) {
	r := entity.NewCompanyResource("rid", "DEV1", "Dev One", "Developer", "ACME", "tester", fixedNow)
	r.Vacations = []entity.VacationPeriod{
		{StartDate: fixedNow, EndDate: fixedNow.AddDate(0, 0, 5), Type: entity.VacationVacation},
		{StartDate: fixedNow.AddDate(0, 0, 3), EndDate: fixedNow.AddDate(0, 0, 8), Type: entity.VacationVacation},
	}
	w := &World{CompanyResources: map[string][]*entity.Resource{"ACME": {r}}}

	result := VacationRulesSpec(w)
	require.True(t, result.HasErrors())
}

func TestAndAccumulatesViolations(t *testing.T) {
	always := func(msg string) Spec {
		return func(w *World) Result { return Result{{Severity: SeverityWarning, Message: msg}} }
	}
	spec := And(always("a"), always("b"))
	require.Len(t, spec(&World{}), 2)
}

func TestOrSatisfiedIfAnyBranchSatisfied(t *testing.T) {
	fails := func(w *World) Result { return Result{{Severity: SeverityError, Message: "nope"}} }
	passes := func(w *World) Result { return nil }
	spec := Or(fails, passes)
	require.True(t, spec(&World{}).Satisfied())
}

func TestNotInvertsSatisfiedSpec(t *testing.T) {
	passes := func(w *World) Result { return nil }
	spec := Not(passes, "x.rule", "should have failed", SeverityError)
	require.False(t, spec(&World{}).Satisfied())
}
