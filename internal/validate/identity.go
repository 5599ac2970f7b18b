package validate

import "github.com/taskrevolution/ttr/internal/entity"

// IdentityRules checks code format, code uniqueness within scope,
// non-empty name, and well-formed email where present (§4.F IdentityRules).
func IdentityRules(w *World) Result {
	var out Result

	companyCodes := map[string][]string{}
	for _, c := range w.Companies {
		if !ValidCode(c.Code) {
			out = append(out, badCode("company", c.Code))
		}
		if c.Name == "" {
			out = append(out, emptyName("company", c.Code))
		}
		companyCodes[c.Code] = append(companyCodes[c.Code], c.ID)
	}
	out = append(out, dupes("company", companyCodes)...)

	projectCodes := map[string][]string{}
	for _, pe := range w.Projects {
		p := pe.Project
		if !ValidCode(p.Code) {
			out = append(out, badCode("project", p.Code))
		}
		if p.Name == "" {
			out = append(out, emptyName("project", p.Code))
		}
		key := pe.CompanyCode + "/" + p.Code
		projectCodes[key] = append(projectCodes[key], p.ID)
	}
	out = append(out, dupes("project", projectCodes)...)

	for key, tasks := range w.Tasks {
		taskCodes := map[string][]string{}
		for _, t := range tasks {
			if !ValidCode(t.Code) {
				out = append(out, badCode("task", t.Code))
			}
			if t.Name == "" {
				out = append(out, emptyName("task", t.Code))
			}
			taskCodes[key+"/"+t.Code] = append(taskCodes[key+"/"+t.Code], t.ID)
		}
		out = append(out, dupes("task", taskCodes)...)
	}

	for scopeKey, resources := range w.CompanyResources {
		out = append(out, identityChecksForResources(scopeKey, resources)...)
	}
	for scopeKey, resources := range w.ProjectResources {
		out = append(out, identityChecksForResources(scopeKey, resources)...)
	}

	if w.Config != nil && w.Config.ManagerEmail != "" && !validEmail(w.Config.ManagerEmail) {
		out = append(out, Violation{
			Severity: SeverityError, Category: "config.identity",
			Message: "manager email is not well-formed",
			Pointer: Pointer{Code: "config", Field: "managerEmail"},
		})
	}

	return out
}

func identityChecksForResources(scopeKey string, resources []*entity.Resource) Result {
	var out Result
	codes := map[string][]string{}
	for _, r := range resources {
		if !ValidCode(r.Code) {
			out = append(out, badCode("resource", r.Code))
		}
		if r.Name == "" {
			out = append(out, emptyName("resource", r.Code))
		}
		if r.Email != "" && !validEmail(r.Email) {
			out = append(out, Violation{
				Severity: SeverityError, Category: "resource.identity",
				Message: fmtf("resource %s has a malformed email", r.Code),
				Pointer: Pointer{Code: r.Code, Field: "email"},
			})
		}
		codes[scopeKey+"/"+r.Code] = append(codes[scopeKey+"/"+r.Code], r.ID)
	}
	return append(out, dupes("resource", codes)...)
}

func badCode(kind, code string) Violation {
	return Violation{
		Severity: SeverityError, Category: kind + ".identity",
		Message:      fmtf("%s code %q is not a valid upper-snake code", kind, code),
		Pointer:      Pointer{Code: code, Field: "code"},
		SuggestedFix: "use only A-Z, 0-9 and underscores, e.g. WEBSITE_REDESIGN",
	}
}

func emptyName(kind, code string) Violation {
	return Violation{
		Severity: SeverityError, Category: kind + ".identity",
		Message: fmtf("%s %s has an empty name", kind, code),
		Pointer: Pointer{Code: code, Field: "name"},
	}
}

func dupes(kind string, codes map[string][]string) Result {
	var out Result
	for key, ids := range codes {
		if len(ids) > 1 {
			out = append(out, Violation{
				Severity: SeverityError, Category: kind + ".identity",
				Message:      fmtf("%s code %q is not unique in its scope", kind, key),
				Pointer:      Pointer{Code: key, Field: "code"},
				SuggestedFix: "rename one of the duplicates",
			})
		}
	}
	return out
}
