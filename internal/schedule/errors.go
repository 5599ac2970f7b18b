package schedule

// UnknownPredecessorError is returned when a link names a predecessor
// code that does not exist in the project.
type UnknownPredecessorError struct {
	TaskCode        string
	PredecessorCode string
}

func (e *UnknownPredecessorError) Error() string {
	return "task " + e.TaskCode + " names unknown predecessor " + e.PredecessorCode
}

// UnresolvableDateError is returned when the working calendar has no
// working days at all, so Advance could never terminate.
type UnresolvableDateError struct {
	TaskCode string
}

func (e *UnresolvableDateError) Error() string {
	return "task " + e.TaskCode + " has no resolvable date: working calendar has no working days"
}

// ResourceVacationConflictWarning flags (non-fatally) that a task's sole
// assigned resource is on vacation during part of its computed window.
type ResourceVacationConflictWarning struct {
	TaskCode     string
	ResourceCode string
}

func (e *ResourceVacationConflictWarning) Error() string {
	return "task " + e.TaskCode + "'s assigned resource " + e.ResourceCode + " has a vacation overlapping its computed window"
}
