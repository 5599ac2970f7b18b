package validate

import "github.com/taskrevolution/ttr/internal/entity"

// ResourceTypeRule checks resource.resourceType against Config's closed
// enumeration (§4.F ResourceTypeRule).
func ResourceTypeRule(w *World) Result {
	if w.Config == nil {
		return nil
	}
	var out Result
	check := func(rs []*entity.Resource) {
		for _, r := range rs {
			if !w.Config.HasResourceType(r.ResourceType) {
				out = append(out, Violation{
					Severity: SeverityError, Category: "resource.resourceType",
					Message:      fmtf("resource %s has undeclared resource type %q", r.Code, r.ResourceType),
					Pointer:      Pointer{Code: r.Code, Field: "resourceType"},
					SuggestedFix: "add the type to config.yaml's resourceTypes or fix the resource",
				})
			}
		}
	}
	for _, rs := range w.CompanyResources {
		check(rs)
	}
	for _, rs := range w.ProjectResources {
		check(rs)
	}
	return out
}
