package repo

import "sort"

// Registry bundles every per-kind repository over one workspace, the
// handle use-cases thread through a command (§4.E "Use-Case
// Orchestrators ... repositories").
type Registry struct {
	WS        *Workspace
	Companies *CompanyRepo
	Projects  *ProjectRepo
	Tasks     *TaskRepo
	Resources *ResourceRepo
	Config    *ConfigRepo
}

// Open builds a Registry over the workspace rooted at root.
func Open(root string) *Registry {
	ws := New(root)
	return &Registry{
		WS:        ws,
		Companies: ws.Companies(),
		Projects:  ws.Projects(),
		Tasks:     ws.Tasks(),
		Resources: ws.Resources(),
		Config:    ws.Config(),
	}
}

// WriteSetEntry is one pending write in a use-case's write-set: a
// descriptive label for error reporting and the save function itself.
type WriteSetEntry struct {
	Label string
	Save  func() error
}

// SaveAll commits entries in order, matching §5's ordering guarantee
// (parents before children, same-kind entities by code ascending — the
// caller is expected to have already sorted entries into that order; this
// only enforces atomicity-per-entry and partial-failure reporting, not
// the ordering itself, since ordering depends on entity kind which this
// generic helper does not know about). On a mid-set failure, entries
// already written are NOT rolled back (§7): the returned error names every
// entry from the failure point onward as "remaining".
func SaveAll(entries []WriteSetEntry) error {
	var written []string
	for i, e := range entries {
		if err := e.Save(); err != nil {
			var remaining []string
			for _, r := range entries[i:] {
				remaining = append(remaining, r.Label)
			}
			return &PartialWriteError{Written: written, Remaining: remaining, Err: err}
		}
		written = append(written, e.Label)
	}
	return nil
}

// SortByCode sorts any slice of (code string) pairs ascending; callers
// build []CodeLabeled then sort before turning it into a write-set, which
// is how §5's "same-kind entities by code ascending" ordering is achieved
// in practice.
type CodeLabeled struct {
	Code  string
	Entry WriteSetEntry
}

func SortByCode(items []CodeLabeled) {
	sort.Slice(items, func(i, j int) bool { return items[i].Code < items[j].Code })
}
