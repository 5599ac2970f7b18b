// Package search implements the `search`/`query` CLI façade's fuzzy
// lookup over workspace entities (§4.I). Grounded on the shape of the
// teacher's internal/search.SearchResult/FormatResult (codebase-relative
// path, score, kind-tagged result, content preview) but reworked from
// vector-embedding similarity to sahilm/fuzzy's Smith-Waterman-style
// substring scoring, since a file-backed workspace of a few thousand
// entities needs no embedding index — a flat in-memory fuzzy match over
// code+name is the right tool, and sahilm/fuzzy is the library the rest
// of the example pack reaches for when it needs exactly this.
package search

import (
	"sort"

	"github.com/sahilm/fuzzy"

	"github.com/taskrevolution/ttr/internal/validate"
)

// Kind tags what sort of entity a Result points at.
type Kind string

const (
	KindCompany  Kind = "company"
	KindProject  Kind = "project"
	KindTask     Kind = "task"
	KindResource Kind = "resource"
)

// Result is one fuzzy match against the workspace index, formatted the
// way FormatResult renders the teacher's semantic search hits: a
// location path, a score, and a one-line summary.
type Result struct {
	Kind        Kind
	CompanyCode string
	ProjectCode string // empty for company-scope hits
	Code        string
	Name        string
	Score       int
}

// Path renders the result's location the way the CLI prints it, mirroring
// FormatResult's "codebase/repo/file:line" header style collapsed to
// TTR's company/project/code addressing.
func (r Result) Path() string {
	switch r.Kind {
	case KindCompany:
		return r.CompanyCode
	case KindProject:
		return r.CompanyCode + "/" + r.ProjectCode
	case KindTask:
		return r.CompanyCode + "/" + r.ProjectCode + "/" + r.Code
	case KindResource:
		if r.ProjectCode != "" {
			return r.CompanyCode + "/" + r.ProjectCode + "/" + r.Code
		}
		return r.CompanyCode + "/" + r.Code
	default:
		return r.Code
	}
}

// document is one indexed entity: Text is the string fuzzy.Source
// matches against (code and name joined so a query can hit either).
type document struct {
	text   string
	result Result
}

// corpus adapts a []document to fuzzy.Source.
type corpus []document

func (c corpus) String(i int) string { return c[i].text }
func (c corpus) Len() int            { return len(c) }

// Index is a built, queryable fuzzy index over one World snapshot.
type Index struct {
	docs corpus
}

// Build indexes every company, project, task, and resource in w.
func Build(w *validate.World) *Index {
	var docs corpus

	for _, c := range w.Companies {
		docs = append(docs, document{
			text:   c.Code + " " + c.Name,
			result: Result{Kind: KindCompany, CompanyCode: c.Code, Code: c.Code, Name: c.Name},
		})
	}

	for _, pe := range w.Projects {
		p := pe.Project
		docs = append(docs, document{
			text:   p.Code + " " + p.Name,
			result: Result{Kind: KindProject, CompanyCode: pe.CompanyCode, Code: p.Code, Name: p.Name},
		})

		for _, t := range w.TasksIn(pe.CompanyCode, p.Code) {
			docs = append(docs, document{
				text:   t.Code + " " + t.Name,
				result: Result{Kind: KindTask, CompanyCode: pe.CompanyCode, ProjectCode: p.Code, Code: t.Code, Name: t.Name},
			})
		}

		for _, r := range w.ProjectResources[pe.CompanyCode+"/"+p.Code] {
			docs = append(docs, document{
				text:   r.Code + " " + r.Name,
				result: Result{Kind: KindResource, CompanyCode: pe.CompanyCode, ProjectCode: p.Code, Code: r.Code, Name: r.Name},
			})
		}
	}

	for companyCode, resources := range w.CompanyResources {
		for _, r := range resources {
			docs = append(docs, document{
				text:   r.Code + " " + r.Name,
				result: Result{Kind: KindResource, CompanyCode: companyCode, Code: r.Code, Name: r.Name},
			})
		}
	}

	return &Index{docs: docs}
}

// Query runs a fuzzy search for pattern, highest score first, ties
// broken by kind then code for determinism. limit<=0 means unbounded.
func (idx *Index) Query(pattern string, limit int) []Result {
	matches := fuzzy.FindFrom(pattern, idx.docs)

	out := make([]Result, 0, len(matches))
	for _, m := range matches {
		r := idx.docs[m.Index].result
		r.Score = m.Score
		out = append(out, r)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		if out[i].Kind != out[j].Kind {
			return out[i].Kind < out[j].Kind
		}
		return out[i].Code < out[j].Code
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
