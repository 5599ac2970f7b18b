// Package usecase implements the transactional command handlers (§4.E):
// methods on Env (repository registry plus clock) that take an input
// struct or codes, load, validate, compute dependency effects, and persist
// the changed entities through the repositories' Save methods.
package usecase

import (
	"fmt"

	"github.com/taskrevolution/ttr/internal/clock"
	"github.com/taskrevolution/ttr/internal/repo"
	"github.com/taskrevolution/ttr/internal/validate"
)

// DuplicateCodeError is returned when a create operation's code (explicit
// or generated) already exists in its scope.
type DuplicateCodeError struct {
	Kind string
	Code string
}

func (e *DuplicateCodeError) Error() string {
	return fmt.Sprintf("%s code %q already exists", e.Kind, e.Code)
}

// ValidationFailedError wraps the Error-severity violations that blocked
// a write (§4.E step 2: "Error-severity blocks the write").
type ValidationFailedError struct {
	Violations validate.Result
}

func (e *ValidationFailedError) Error() string {
	return fmt.Sprintf("validation failed with %d error(s)", len(errorsOnly(e.Violations)))
}

func errorsOnly(r validate.Result) validate.Result {
	var out validate.Result
	for _, v := range r {
		if v.Severity == validate.SeverityError {
			out = append(out, v)
		}
	}
	return out
}

// UnknownParentError is returned when a create operation names a parent
// entity (company, project) that does not exist.
type UnknownParentError struct {
	Kind       string
	ParentKind string
	ParentCode string
}

func (e *UnknownParentError) Error() string {
	return fmt.Sprintf("cannot create %s: unknown %s %q", e.Kind, e.ParentKind, e.ParentCode)
}

// Env bundles what every use-case needs: the repository registry and a
// clock, injected for deterministic tests (§8 round-trip/determinism laws).
type Env struct {
	Reg   *repo.Registry
	Clock clock.Clock
}
