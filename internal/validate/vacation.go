package validate

import "github.com/taskrevolution/ttr/internal/entity"

// VacationRulesSpec enforces the vacation/layoff invariants of §3.1 and
// §4.F VacationRules: non-layoff vacations for one resource may not
// overlap; overlapping periods are tolerated only when both are
// layoff-type and Config allows concurrent layoff vacations; a layoff
// vacation must overlap a declared layoffPeriod when Config requires one;
// and the count of resources simultaneously on non-layoff vacation within
// a project may not exceed that project's (or Config's) maxConcurrentVacations.
func VacationRulesSpec(w *World) Result {
	var out Result

	allowConcurrentLayoffs := w.Config != nil && w.Config.VacationRules.AllowConcurrentLayoffVacations
	requireLayoffPeriod := w.Config != nil && w.Config.VacationRules.RequireLayoffVacationPeriod
	layoffPeriods := []entity.VacationPeriod{}
	if w.Config != nil {
		layoffPeriods = w.Config.VacationRules.LayoffPeriods
	}

	visitResource := func(r *entity.Resource) {
		for i := 0; i < len(r.Vacations); i++ {
			for j := i + 1; j < len(r.Vacations); j++ {
				a, b := r.Vacations[i], r.Vacations[j]
				if !a.Overlaps(b) {
					continue
				}
				if a.IsLayoff && b.IsLayoff && allowConcurrentLayoffs {
					continue
				}
				out = append(out, Violation{
					Severity: SeverityError, Category: "resource.vacation",
					Message:      fmtf("resource %s has overlapping vacation periods", r.Code),
					Pointer:      Pointer{Code: r.Code, Field: "vacations"},
					SuggestedFix: "adjust the date ranges so they no longer overlap",
				})
			}
			if r.Vacations[i].IsLayoff && requireLayoffPeriod {
				overlapsDeclared := false
				for _, lp := range layoffPeriods {
					if r.Vacations[i].Overlaps(lp) {
						overlapsDeclared = true
						break
					}
				}
				if !overlapsDeclared {
					out = append(out, Violation{
						Severity: SeverityError, Category: "resource.vacation",
						Message: fmtf("resource %s has a layoff vacation outside any declared layoff period", r.Code),
						Pointer: Pointer{Code: r.Code, Field: "vacations"},
					})
				}
			}
		}
	}

	for _, rs := range w.CompanyResources {
		for _, r := range rs {
			visitResource(r)
		}
	}
	for _, rs := range w.ProjectResources {
		for _, r := range rs {
			visitResource(r)
		}
	}

	for _, pe := range w.Projects {
		out = append(out, checkConcurrentVacations(w, pe)...)
	}

	return out
}

// checkConcurrentVacations counts, for every non-layoff vacation period
// belonging to a resource visible to the project, how many other such
// periods it overlaps; a count exceeding the project's policy (falling
// back to Config's) is a violation. This is an O(n^2) pairwise scan
// rather than a sweep line, acceptable at the per-project resource counts
// a single workspace manifest tree holds.
func checkConcurrentVacations(w *World, pe ProjectEntry) Result {
	limit := 1
	if w.Config != nil {
		limit = w.Config.VacationRules.MaxConcurrentVacations
	}
	if pe.Project.VacationPolicy != nil && pe.Project.VacationPolicy.MaxConcurrentVacations > 0 {
		limit = pe.Project.VacationPolicy.MaxConcurrentVacations
	}
	if limit <= 0 {
		return nil
	}

	type entry struct {
		resourceCode string
		period       entity.VacationPeriod
	}
	var periods []entry
	for _, r := range w.ResourcesVisibleTo(pe.CompanyCode, pe.Project.Code) {
		for _, v := range r.NonLayoffVacations() {
			periods = append(periods, entry{resourceCode: r.Code, period: v})
		}
	}

	var out Result
	reported := map[string]bool{}
	for i, e := range periods {
		concurrent := 1
		for j, other := range periods {
			if i == j || e.resourceCode == other.resourceCode {
				continue
			}
			if e.period.Overlaps(other.period) {
				concurrent++
			}
		}
		if concurrent > limit && !reported[pe.Project.Code] {
			out = append(out, Violation{
				Severity: SeverityError, Category: "project.vacation",
				Message:      fmtf("project %s has %d resources simultaneously on vacation, exceeding its limit of %d", pe.Project.Code, concurrent, limit),
				Pointer:      Pointer{Code: pe.Project.Code, Field: "vacationPolicy"},
				SuggestedFix: "stagger the vacation requests or raise maxConcurrentVacations",
			})
			reported[pe.Project.Code] = true
		}
	}
	return out
}
