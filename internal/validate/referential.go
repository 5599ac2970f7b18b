package validate

import "github.com/taskrevolution/ttr/internal/entity"

// ReferentialRules checks task.predecessors exist in the same project,
// task.assignedResources resolve in company or project scope, and
// project.companyCode references a live (non-Inactive) company
// (§4.F ReferentialRules).
func ReferentialRules(w *World) Result {
	var out Result

	for _, pe := range w.Projects {
		company := w.CompanyByCode(pe.CompanyCode)
		if company == nil {
			out = append(out, Violation{
				Severity: SeverityError, Category: "project.referential",
				Message:      fmtf("project %s references unknown company %s", pe.Project.Code, pe.CompanyCode),
				Pointer:      Pointer{Code: pe.Project.Code, Field: "companyCode"},
				SuggestedFix: "create the company first or fix the project's companyCode",
			})
			continue
		}
		if company.Status == entity.CompanyInactive {
			out = append(out, Violation{
				Severity: SeverityError, Category: "project.referential",
				Message: fmtf("project %s belongs to inactive company %s", pe.Project.Code, pe.CompanyCode),
				Pointer: Pointer{Code: pe.Project.Code, Field: "companyCode"},
			})
		}
	}

	for _, pe := range w.Projects {
		tasks := w.TasksIn(pe.CompanyCode, pe.Project.Code)
		taskByCode := map[string]*entity.Task{}
		for _, t := range tasks {
			taskByCode[t.Code] = t
		}
		resources := w.ResourcesVisibleTo(pe.CompanyCode, pe.Project.Code)
		resourceCodes := map[string]bool{}
		for _, r := range resources {
			resourceCodes[r.Code] = true
		}

		for _, t := range tasks {
			for _, pred := range t.Predecessors {
				if _, ok := taskByCode[pred]; !ok {
					out = append(out, Violation{
						Severity: SeverityError, Category: "task.referential",
						Message:      fmtf("task %s depends on unknown predecessor %s", t.Code, pred),
						Pointer:      Pointer{Code: t.Code, Field: "predecessors"},
						SuggestedFix: "remove the stale predecessor or fix its code",
					})
				}
			}
			for _, rc := range t.AssignedResources {
				if !resourceCodes[rc] {
					out = append(out, Violation{
						Severity: SeverityError, Category: "task.referential",
						Message:      fmtf("task %s assigns unknown resource %s", t.Code, rc),
						Pointer:      Pointer{Code: t.Code, Field: "assignedResources"},
						SuggestedFix: "create the resource or unassign it from the task",
					})
				}
			}
		}
	}

	return out
}
