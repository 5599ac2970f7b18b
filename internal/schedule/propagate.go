package schedule

import (
	"sort"
	"strings"
	"time"

	"github.com/taskrevolution/ttr/internal/entity"
)

// Result is one task's recomputed window, with Changed set when the
// newly-computed finish differs from what the task currently declares.
type Result struct {
	Task    *entity.Task
	Window  Window
	Changed bool
}

// Recompute walks every task in a project in topological order and
// computes each one's earliest-start/earliest-finish window (§4.G.3):
// earliestStart = max(declaredStart, maxPredecessorFinish); earliestFinish
// = advance(earliestStart, estimatedHours, calendar, vacations).
// Vacations are applied only when a task has exactly one assigned
// resource; multi-assignee tasks use the calendar alone.
func Recompute(tasks []*entity.Task, cal *Calendar, resourceVacations map[string][]entity.VacationPeriod, cache *Cache) ([]Result, error) {
	if !cal.hasAnyWorkingDay() && len(tasks) > 0 {
		return nil, &UnresolvableDateError{TaskCode: tasks[0].Code}
	}

	ordered, err := TopoOrder(tasks)
	if err != nil {
		return nil, err
	}

	windows := map[string]Window{}
	out := make([]Result, 0, len(ordered))

	for _, t := range ordered {
		earliestStart := t.StartDate
		predecessorFinishes := map[string]time.Time{}
		for _, p := range t.Predecessors {
			w, ok := windows[p]
			if !ok {
				continue
			}
			predecessorFinishes[p] = w.EarliestFinish
			if w.EarliestFinish.After(earliestStart) {
				earliestStart = w.EarliestFinish
			}
		}

		var vacations []entity.VacationPeriod
		if len(t.AssignedResources) == 1 {
			vacations = resourceVacations[t.AssignedResources[0]]
		}

		key := Key(t.StartDate, t.DueDate, t.EstimatedHours, predecessorFinishes, assignmentFingerprint(t.AssignedResources))

		w, ok := cache.Get(t.Code, key)
		if !ok {
			w = Window{EarliestStart: earliestStart, EarliestFinish: Advance(earliestStart, t.EstimatedHours, cal, vacations)}
			cache.Put(t.Code, key, w)
		}

		windows[t.Code] = w
		out = append(out, Result{Task: t, Window: w, Changed: !w.EarliestFinish.Equal(t.DueDate)})
	}

	return out, nil
}

func assignmentFingerprint(codes []string) string {
	sorted := append([]string{}, codes...)
	sort.Strings(sorted)
	return strings.Join(sorted, ",")
}

// SuccessorsOf returns every task that transitively depends on taskCode,
// via BFS over the successor adjacency derived from each task's
// Predecessors list.
func SuccessorsOf(tasks []*entity.Task, taskCode string) []string {
	successors := map[string][]string{}
	for _, t := range tasks {
		for _, p := range t.Predecessors {
			successors[p] = append(successors[p], t.Code)
		}
	}

	var out []string
	seen := map[string]bool{}
	queue := append([]string{}, successors[taskCode]...)
	for len(queue) > 0 {
		code := queue[0]
		queue = queue[1:]
		if seen[code] {
			continue
		}
		seen[code] = true
		out = append(out, code)
		queue = append(queue, successors[code]...)
	}
	return out
}

// RecomputeClosure recomputes windows for the full task set (earliest
// start depends on predecessor chains outside the closure too) but
// returns results only for changedCode and its transitive successors, so
// callers apply writes only to that closure (§4.G.4: "recompute the
// transitive successor closure only; other tasks are not touched").
func RecomputeClosure(allTasks []*entity.Task, changedCode string, cal *Calendar, resourceVacations map[string][]entity.VacationPeriod, cache *Cache) ([]Result, error) {
	closure := map[string]bool{changedCode: true}
	for _, c := range SuccessorsOf(allTasks, changedCode) {
		closure[c] = true
	}

	results, err := Recompute(allTasks, cal, resourceVacations, cache)
	if err != nil {
		return nil, err
	}

	out := make([]Result, 0, len(closure))
	for _, r := range results {
		if closure[r.Task.Code] {
			out = append(out, r)
		}
	}
	return out, nil
}
