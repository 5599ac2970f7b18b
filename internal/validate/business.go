package validate

// BusinessRules is the catch-all DataIntegrity check, run by the
// `validate` command as part of AllRules (§4.F "BusinessRule/DataIntegrity: catch-all
// cross-checks"): it flags structural conditions no single-entity or
// single-relationship rule above already covers.
func BusinessRules(w *World) Result {
	var out Result

	for _, c := range w.Companies {
		if !c.AcceptsNewChildren() {
			hasLiveChildren := false
			for _, pe := range w.Projects {
				if pe.CompanyCode == c.Code && pe.Project.Status != "Cancelled" {
					hasLiveChildren = true
					break
				}
			}
			if hasLiveChildren {
				out = append(out, Violation{
					Severity: SeverityInfo, Category: "company.business",
					Message: fmtf("company %s is %s but still owns active projects", c.Code, c.Status),
					Pointer: Pointer{Code: c.Code, Field: "status"},
				})
			}
		}
	}

	for _, pe := range w.Projects {
		tasks := w.TasksIn(pe.CompanyCode, pe.Project.Code)
		if pe.Project.Status == "Completed" {
			for _, t := range tasks {
				if t.Status != "Done" && t.Status != "Cancelled" {
					out = append(out, Violation{
						Severity: SeverityWarning, Category: "project.business",
						Message: fmtf("project %s is Completed but task %s is still %s", pe.Project.Code, t.Code, t.Status),
						Pointer: Pointer{Code: t.Code, Field: "status"},
					})
				}
			}
		}
	}

	return out
}
