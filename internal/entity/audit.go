// Package entity defines the typed, typestate-enforced aggregates of a
// TaskTaskRevolution workspace (Company, Project, Task, Resource, Config)
// and their legal lifecycle transitions. Mutators are pointer methods that
// update the entity in place and report an illegal transition as a
// returned error (mutators that cannot fail return nothing) — there is no
// exception-style unwinding, matching the teacher's
// "return a value or an error, never panic" discipline.
package entity

import "time"

// Audit carries the bookkeeping fields every entity persists.
type Audit struct {
	CreatedAt time.Time
	UpdatedAt time.Time
	CreatedBy string
}

func newAudit(createdBy string, now time.Time) Audit {
	return Audit{CreatedAt: now, UpdatedAt: now, CreatedBy: createdBy}
}

func (a *Audit) touch(now time.Time) { a.UpdatedAt = now }

// TransitionError reports an illegal typestate transition.
type TransitionError struct {
	Kind string
	Code string
	From string
	To   string
}

func (e *TransitionError) Error() string {
	return e.Kind + " " + e.Code + ": cannot transition from " + e.From + " to " + e.To
}

// AlreadyDeletedWarning is returned (never as a hard error) when a
// soft-delete is applied to an already-terminal entity, per invariant 7
// (delete is idempotent).
type AlreadyDeletedWarning struct {
	Kind string
	Code string
}

func (w *AlreadyDeletedWarning) Error() string {
	return w.Kind + " " + w.Code + " is already deleted"
}
