package validate

import "github.com/taskrevolution/ttr/internal/entity"

// TemporalRules checks start <= end across project/task/resource windows,
// a task's window falls within its project's window when the project
// declares one, and a vacation's window falls within its resource's
// declared window when both are present (§4.F TemporalRules).
func TemporalRules(w *World) Result {
	var out Result

	for _, pe := range w.Projects {
		p := pe.Project
		if p.StartDate != nil && p.EndDate != nil && p.StartDate.After(*p.EndDate) {
			out = append(out, Violation{
				Severity: SeverityError, Category: "project.temporal",
				Message: fmtf("project %s start date is after its end date", p.Code),
				Pointer: Pointer{Code: p.Code, Field: "startDate"},
			})
		}

		for _, t := range w.TasksIn(pe.CompanyCode, p.Code) {
			if t.StartDate.After(t.DueDate) {
				out = append(out, Violation{
					Severity: SeverityError, Category: "task.temporal",
					Message: fmtf("task %s start date is after its due date", t.Code),
					Pointer: Pointer{Code: t.Code, Field: "startDate"},
				})
			}
			if p.StartDate != nil && t.StartDate.Before(*p.StartDate) {
				out = append(out, Violation{
					Severity: SeverityWarning, Category: "task.temporal",
					Message: fmtf("task %s starts before its project's start date", t.Code),
					Pointer: Pointer{Code: t.Code, Field: "startDate"},
				})
			}
			if p.EndDate != nil && t.DueDate.After(*p.EndDate) {
				out = append(out, Violation{
					Severity: SeverityWarning, Category: "task.temporal",
					Message: fmtf("task %s is due after its project's end date", t.Code),
					Pointer: Pointer{Code: t.Code, Field: "dueDate"},
				})
			}
		}
	}

	var allResources []*entity.Resource
	for _, rs := range w.CompanyResources {
		allResources = append(allResources, rs...)
	}
	for _, rs := range w.ProjectResources {
		allResources = append(allResources, rs...)
	}

	for _, r := range allResources {
		if r.StartDate != nil && r.EndDate != nil && r.StartDate.After(*r.EndDate) {
			out = append(out, Violation{
				Severity: SeverityError, Category: "resource.temporal",
				Message: fmtf("resource %s start date is after its end date", r.Code),
				Pointer: Pointer{Code: r.Code, Field: "startDate"},
			})
		}
		for _, v := range r.Vacations {
			if v.StartDate.After(v.EndDate) {
				out = append(out, Violation{
					Severity: SeverityError, Category: "resource.temporal",
					Message: fmtf("resource %s has a vacation period with start after end", r.Code),
					Pointer: Pointer{Code: r.Code, Field: "vacations"},
				})
				continue
			}
			if r.StartDate != nil && v.StartDate.Before(*r.StartDate) {
				out = append(out, Violation{
					Severity: SeverityWarning, Category: "resource.temporal",
					Message: fmtf("resource %s has a vacation starting before its own start date", r.Code),
					Pointer: Pointer{Code: r.Code, Field: "vacations"},
				})
			}
			if r.EndDate != nil && v.EndDate.After(*r.EndDate) {
				out = append(out, Violation{
					Severity: SeverityWarning, Category: "resource.temporal",
					Message: fmtf("resource %s has a vacation ending after its own end date", r.Code),
					Pointer: Pointer{Code: r.Code, Field: "vacations"},
				})
			}
		}
	}

	return out
}
