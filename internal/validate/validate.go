// Package validate implements the specification-pattern rule engine that
// enforces cross-entity invariants (§4.F): resource-type allow-lists, date
// ordering, referential integrity, vacation/layoff overlap rules, and WIP
// limits. A Spec is a predicate over a World snapshot that yields a set of
// structured Violations rather than a bare bool, so callers can report
// every problem in one pass instead of failing fast on the first.
package validate

import (
	"fmt"
	"regexp"

	"github.com/taskrevolution/ttr/internal/entity"
)

// Severity classifies how serious a Violation is. Only SeverityError
// blocks a use-case's write (§4.F: "Error-severity blocks the write").
type Severity string

const (
	SeverityError   Severity = "Error"
	SeverityWarning Severity = "Warning"
	SeverityInfo    Severity = "Info"
)

// Pointer locates a Violation within an entity.
type Pointer struct {
	Code  string
	Field string
}

// Violation is one structured finding from a Spec.
type Violation struct {
	Severity     Severity
	Category     string // "<entity-kind>.<rule-key>", e.g. "task.temporal"
	Message      string
	Pointer      Pointer
	SuggestedFix string
}

// Result is the accumulated findings of evaluating one or more Specs.
type Result []Violation

// HasErrors reports whether any Violation in the result is Error-severity.
func (r Result) HasErrors() bool {
	for _, v := range r {
		if v.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Satisfied reports whether the result carries no violations at all.
func (r Result) Satisfied() bool { return len(r) == 0 }

// ProjectEntry pairs a project with its owning company's code, the shape
// the World snapshot indexes projects by.
type ProjectEntry struct {
	Project     *entity.Project
	CompanyCode string
}

// World is the read-only snapshot a Spec evaluates against. Use-cases and
// the standalone `validate` command alike build it over the whole
// workspace (usecase.LoadWorld); use-cases then add or mutate the entity
// in play before evaluating.
type World struct {
	Config *entity.Config

	Companies []*entity.Company
	Projects  []ProjectEntry

	// Tasks keyed by "<companyCode>/<projectCode>".
	Tasks map[string][]*entity.Task

	// Resources keyed by company code (company-scope) and by
	// "<companyCode>/<projectCode>" (project-scope).
	CompanyResources map[string][]*entity.Resource
	ProjectResources map[string][]*entity.Resource
}

func projectKey(companyCode, projectCode string) string { return companyCode + "/" + projectCode }

// CompanyByCode looks up a company by code, nil if absent.
func (w *World) CompanyByCode(code string) *entity.Company {
	for _, c := range w.Companies {
		if c.Code == code {
			return c
		}
	}
	return nil
}

// ProjectByCode looks up a project within a company, nil if absent.
func (w *World) ProjectByCode(companyCode, code string) *entity.Project {
	for _, p := range w.Projects {
		if p.CompanyCode == companyCode && p.Project.Code == code {
			return p.Project
		}
	}
	return nil
}

// TasksIn returns the tasks owned by companyCode/projectCode.
func (w *World) TasksIn(companyCode, projectCode string) []*entity.Task {
	return w.Tasks[projectKey(companyCode, projectCode)]
}

// ResourcesVisibleTo returns every resource a task in projectCode could
// name: the project's own resources plus the owning company's.
func (w *World) ResourcesVisibleTo(companyCode, projectCode string) []*entity.Resource {
	out := append([]*entity.Resource{}, w.CompanyResources[companyCode]...)
	out = append(out, w.ProjectResources[projectKey(companyCode, projectCode)]...)
	return out
}

// Spec is a predicate over a World, producing every Violation it finds.
// A Spec with no domain objects to check against (e.g. an empty World)
// simply returns an empty Result rather than erroring.
type Spec func(w *World) Result

// And runs every spec and accumulates all violations (§4.F: "AND
// (accumulate violations)").
func And(specs ...Spec) Spec {
	return func(w *World) Result {
		var out Result
		for _, s := range specs {
			out = append(out, s(w)...)
		}
		return out
	}
}

// Or is satisfied if any spec is satisfied; otherwise every spec's
// violations are merged (§4.F: "OR (first satisfied wins; else merged)").
func Or(specs ...Spec) Spec {
	return func(w *World) Result {
		var merged Result
		for _, s := range specs {
			r := s(w)
			if r.Satisfied() {
				return nil
			}
			merged = append(merged, r...)
		}
		return merged
	}
}

// Not inverts a spec: satisfied becomes violated (with the given message)
// and violated becomes satisfied (§4.F: "NOT (invert with rephrased
// message)").
func Not(spec Spec, category, message string, severity Severity) Spec {
	return func(w *World) Result {
		if spec(w).Satisfied() {
			return Result{{Severity: severity, Category: category, Message: message}}
		}
		return nil
	}
}

var codeFormat = regexp.MustCompile(`^[A-Z0-9]+(_[A-Z0-9]+)*$`)

// ValidCode reports whether code matches the upper-snake convention
// codes are generated in (§3.3), used by IdentityRules, which the create
// use-cases run over the candidate state whether the code was explicit or
// generated.
func ValidCode(code string) bool { return code != "" && codeFormat.MatchString(code) }

var emailFormat = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func validEmail(s string) bool { return emailFormat.MatchString(s) }

// AllRules is the full rule suite §4.F names, run by the standalone
// `validate` command and available to use-cases that want every check
// rather than a narrow subset.
var AllRules = And(
	IdentityRules,
	ReferentialRules,
	TemporalRules,
	ResourceTypeRule,
	VacationRulesSpec,
	WIPRule,
	BusinessRules,
)

func fmtf(format string, args ...any) string { return fmt.Sprintf(format, args...) }
