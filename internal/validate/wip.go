package validate

import "github.com/taskrevolution/ttr/internal/entity"

// WIPRule checks that, for every resource, the number of active project
// assignments whose windows overlap at any point in time does not exceed
// Config's maxActiveTasks (§4.F WIPRule; "default derived from role" is
// left as a flat Config default since §3.1 declares no per-role table).
func WIPRule(w *World) Result {
	if w.Config == nil || w.Config.MaxActiveTasks <= 0 {
		return nil
	}
	limit := w.Config.MaxActiveTasks

	var out Result
	for _, rs := range w.CompanyResources {
		for _, r := range rs {
			out = append(out, checkWIP(r, limit)...)
		}
	}
	for _, rs := range w.ProjectResources {
		for _, r := range rs {
			out = append(out, checkWIP(r, limit)...)
		}
	}
	return out
}

// checkWIP flags a resource once if any of its assignments, counted
// together with the other assignments whose windows overlap it, exceeds
// `limit`, and reports the actual peak overlap found.
func checkWIP(r *entity.Resource, limit int) Result {
	peak := 0
	for i, a := range r.Assignments {
		concurrent := 1
		for j, other := range r.Assignments {
			if i == j {
				continue
			}
			if a.Overlaps(other.Start, other.End) {
				concurrent++
			}
		}
		if concurrent > peak {
			peak = concurrent
		}
	}
	if peak > limit {
		return Result{{
			Severity: SeverityWarning, Category: "resource.wip",
			Message:      fmtf("resource %s has %d overlapping active assignments, exceeding the WIP limit of %d", r.Code, peak, limit),
			Pointer:      Pointer{Code: r.Code, Field: "assignments"},
			SuggestedFix: "reduce the resource's concurrent assignments or raise maxActiveTasks",
		}}
	}
	return nil
}
