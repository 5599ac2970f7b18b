package schedule

import "github.com/taskrevolution/ttr/internal/entity"

// CycleDetectedError is returned when accepting a link would close a
// loop in the predecessor graph (§4.G "Failure modes").
type CycleDetectedError struct {
	From, To string
	Path     []string
}

func (e *CycleDetectedError) Error() string {
	msg := "linking " + e.From + " -> " + e.To + " would create a cycle"
	for _, p := range e.Path {
		msg += " <- " + p
	}
	return msg
}

// WouldCreateCycle runs a DFS from `from` through its transitive
// predecessors looking for `to`; if found, `from` already (transitively)
// depends on `to`, so adding `from` as a new predecessor of `to` would
// close a loop (§4.G.1).
func WouldCreateCycle(tasksByCode map[string]*entity.Task, from, to string) (bool, []string) {
	visited := map[string]bool{}
	var path []string

	var dfs func(code string) bool
	dfs = func(code string) bool {
		if code == to {
			path = append(path, code)
			return true
		}
		if visited[code] {
			return false
		}
		visited[code] = true
		t, ok := tasksByCode[code]
		if !ok {
			return false
		}
		for _, p := range t.Predecessors {
			if dfs(p) {
				path = append(path, code)
				return true
			}
		}
		return false
	}

	t, ok := tasksByCode[from]
	if !ok {
		return false, nil
	}
	for _, p := range t.Predecessors {
		if dfs(p) {
			path = append(path, from)
			return true, path
		}
	}
	return false, nil
}
