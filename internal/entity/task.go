package entity

import "time"

// TaskStatus is the task's typestate tag (§4.B).
type TaskStatus string

const (
	TaskPlanned    TaskStatus = "Planned"
	TaskToDo       TaskStatus = "ToDo"
	TaskInProgress TaskStatus = "InProgress"
	TaskDone       TaskStatus = "Done"
	TaskBlocked    TaskStatus = "Blocked"
	TaskCancelled  TaskStatus = "Cancelled"
)

// TaskPriority ranks a task's urgency.
type TaskPriority string

const (
	PriorityLow      TaskPriority = "Low"
	PriorityMedium   TaskPriority = "Medium"
	PriorityHigh     TaskPriority = "High"
	PriorityCritical TaskPriority = "Critical"
)

// Comment is one entry in a task's comment log.
type Comment struct {
	Author  string
	At      time.Time
	Message string
}

// Task is owned by exactly one Project; it references (does not own)
// Resources by code and other Tasks by code.
type Task struct {
	Audit
	ID                 string
	Code               string
	ProjectCode        string
	Name               string
	Description        string
	Status             TaskStatus
	Priority           TaskPriority
	Category           string
	StartDate          time.Time
	DueDate            time.Time
	ActualStart        *time.Time
	ActualEnd          *time.Time
	EstimatedHours     float64
	ActualHours        *float64
	Predecessors       []string
	AssignedResources  []string
	AcceptanceCriteria []string
	Comments           []Comment
}

// NewTask constructs a Planned task. start must not be after due, and
// estimatedHours must be >= 0 (§3.1); callers validate these before
// calling, the constructor itself trusts its inputs since validation is a
// framework concern (§4.F), not an entity concern.
func NewTask(id, code, projectCode, name, createdBy string, start, due time.Time, estimatedHours float64, now time.Time) *Task {
	return &Task{
		Audit:          newAudit(createdBy, now),
		ID:             id,
		Code:           code,
		ProjectCode:    projectCode,
		Name:           name,
		Status:         TaskPlanned,
		Priority:       PriorityMedium,
		StartDate:      start,
		DueDate:        due,
		EstimatedHours: estimatedHours,
	}
}

// SetDates patches the task's declared start/due window, rejecting
// start > due (§3.1). Propagation to dependent tasks is the scheduling
// engine's concern (§4.G.4), not the entity's.
func (t *Task) SetDates(start, due time.Time, now time.Time) error {
	if start.After(due) {
		return &TransitionError{Kind: "task", Code: t.Code, From: "start<=due", To: "start>due"}
	}
	t.StartDate = start
	t.DueDate = due
	t.touch(now)
	return nil
}

var taskTransitions = map[TaskStatus]map[TaskStatus]bool{
	TaskPlanned:    {TaskToDo: true, TaskBlocked: true, TaskCancelled: true},
	TaskToDo:       {TaskInProgress: true, TaskBlocked: true, TaskCancelled: true},
	TaskInProgress: {TaskDone: true, TaskBlocked: true, TaskCancelled: true},
	TaskBlocked:    {TaskPlanned: true, TaskToDo: true, TaskInProgress: true, TaskCancelled: true},
	TaskDone:       {TaskCancelled: true},
	TaskCancelled:  {},
}

// predecessorsSatisfied reports whether every predecessor status allows the
// task to become Done (invariant 5: all predecessors Done or Cancelled).
func predecessorsSatisfied(predecessorStatuses []TaskStatus) bool {
	for _, s := range predecessorStatuses {
		if s != TaskDone && s != TaskCancelled {
			return false
		}
	}
	return true
}

// Transition moves the task to `to`. Moving to Done additionally requires
// predecessorStatuses (the caller-resolved statuses of this task's
// predecessors) to all be Done or Cancelled.
func (t *Task) Transition(to TaskStatus, predecessorStatuses []TaskStatus, now time.Time) error {
	if t.Status == to {
		return nil
	}
	allowed, ok := taskTransitions[t.Status]
	if !ok || !allowed[to] {
		return &TransitionError{Kind: "task", Code: t.Code, From: string(t.Status), To: string(to)}
	}
	if to == TaskDone && !predecessorsSatisfied(predecessorStatuses) {
		return &TransitionError{Kind: "task", Code: t.Code, From: string(t.Status), To: "Done (predecessors incomplete)"}
	}
	t.Status = to
	t.touch(now)
	if to == TaskInProgress && t.ActualStart == nil {
		start := now
		t.ActualStart = &start
	}
	if to == TaskDone && t.ActualEnd == nil {
		end := now
		t.ActualEnd = &end
	}
	return nil
}

// Delete soft-deletes the task (idempotent, per invariant 7).
func (t *Task) Delete(now time.Time) error {
	if t.Status == TaskCancelled {
		return &AlreadyDeletedWarning{Kind: "task", Code: t.Code}
	}
	t.Status = TaskCancelled
	t.touch(now)
	return nil
}

// AddPredecessor appends code to the predecessor list if not already
// present. Cycle checking is the dependency engine's job (§4.G.1), not the
// entity's.
func (t *Task) AddPredecessor(code string, now time.Time) {
	for _, p := range t.Predecessors {
		if p == code {
			return
		}
	}
	t.Predecessors = append(t.Predecessors, code)
	t.touch(now)
}

// RemovePredecessor removes code from the predecessor list.
func (t *Task) RemovePredecessor(code string, now time.Time) bool {
	for i, p := range t.Predecessors {
		if p == code {
			t.Predecessors = append(t.Predecessors[:i], t.Predecessors[i+1:]...)
			t.touch(now)
			return true
		}
	}
	return false
}

// AssignResource adds resourceCode to the assigned set (idempotent).
func (t *Task) AssignResource(resourceCode string, now time.Time) {
	for _, r := range t.AssignedResources {
		if r == resourceCode {
			return
		}
	}
	t.AssignedResources = append(t.AssignedResources, resourceCode)
	t.touch(now)
}

// UnassignResource removes resourceCode from the assigned set.
func (t *Task) UnassignResource(resourceCode string, now time.Time) bool {
	for i, r := range t.AssignedResources {
		if r == resourceCode {
			t.AssignedResources = append(t.AssignedResources[:i], t.AssignedResources[i+1:]...)
			t.touch(now)
			return true
		}
	}
	return false
}

// AddComment appends to the comment log.
func (t *Task) AddComment(author, message string, now time.Time) {
	t.Comments = append(t.Comments, Comment{Author: author, At: now, Message: message})
	t.touch(now)
}
