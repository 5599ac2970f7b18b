package schedule

import (
	"sort"

	"github.com/taskrevolution/ttr/internal/entity"
)

// TopoOrder orders tasks so every predecessor precedes its successors,
// using Kahn's algorithm with ties broken by task code ascending for
// determinism (§4.G.2). Predecessor codes with no matching task (already
// reported by the Validation Framework's ReferentialRules) are ignored
// rather than causing a spurious cycle error here.
func TopoOrder(tasks []*entity.Task) ([]*entity.Task, error) {
	byCode := make(map[string]*entity.Task, len(tasks))
	indegree := make(map[string]int, len(tasks))
	successors := map[string][]string{}

	for _, t := range tasks {
		byCode[t.Code] = t
		if _, ok := indegree[t.Code]; !ok {
			indegree[t.Code] = 0
		}
	}
	for _, t := range tasks {
		for _, p := range t.Predecessors {
			if _, ok := byCode[p]; !ok {
				continue
			}
			successors[p] = append(successors[p], t.Code)
			indegree[t.Code]++
		}
	}

	var ready []string
	for code, deg := range indegree {
		if deg == 0 {
			ready = append(ready, code)
		}
	}
	sort.Strings(ready)

	order := make([]*entity.Task, 0, len(tasks))
	for len(ready) > 0 {
		code := ready[0]
		ready = ready[1:]
		order = append(order, byCode[code])

		var newlyReady []string
		for _, succ := range successors[code] {
			indegree[succ]--
			if indegree[succ] == 0 {
				newlyReady = append(newlyReady, succ)
			}
		}
		if len(newlyReady) > 0 {
			sort.Strings(newlyReady)
			ready = mergeSorted(ready, newlyReady)
		}
	}

	if len(order) != len(tasks) {
		return nil, &CycleDetectedError{}
	}
	return order, nil
}

// mergeSorted merges two already-sorted string slices, keeping `ready`
// ordered without re-sorting the whole slice on every pop.
func mergeSorted(a, b []string) []string {
	out := make([]string, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		if a[i] <= b[j] {
			out = append(out, a[i])
			i++
		} else {
			out = append(out, b[j])
			j++
		}
	}
	out = append(out, a[i:]...)
	out = append(out, b[j:]...)
	return out
}
