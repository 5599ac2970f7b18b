package usecase

import (
	"fmt"

	"github.com/taskrevolution/ttr/internal/entity"
	"github.com/taskrevolution/ttr/internal/schedule"
)

// SameProjectError is returned when link/unlink is attempted across
// projects (§4.E: "must be same project").
type SameProjectError struct {
	From, To string
}

func (e *SameProjectError) Error() string {
	return fmt.Sprintf("cannot link %s and %s: not in the same project", e.From, e.To)
}

// LinkResult reports the new predecessor edge plus any propagated
// successor date changes.
type LinkResult struct {
	Task              *entity.Task
	PropagatedChanges []schedule.Result
}

// LinkTasks adds `from` as a predecessor of `to`, rejecting a link that
// would create a cycle (§4.G.1) or cross project boundaries, and
// propagating the resulting date changes (§4.E).
func (e Env) LinkTasks(companyCode, projectCode, from, to string) (*LinkResult, error) {
	tasks, err := e.Reg.Tasks.FindAll(companyCode, projectCode)
	if err != nil {
		return nil, err
	}
	byCode := map[string]*entity.Task{}
	for _, t := range tasks {
		byCode[t.Code] = t
	}

	toTask, ok := byCode[to]
	if !ok {
		return nil, &SameProjectError{From: from, To: to}
	}
	if _, ok := byCode[from]; !ok {
		return nil, &SameProjectError{From: from, To: to}
	}

	if cyclic, path := schedule.WouldCreateCycle(byCode, from, to); cyclic {
		return nil, &schedule.CycleDetectedError{From: from, To: to, Path: path}
	}

	toTask.AddPredecessor(from, e.Clock.Now())
	if err := e.Reg.Tasks.Save(companyCode, toTask); err != nil {
		return nil, err
	}

	changes, err := e.propagate(companyCode, projectCode, to)
	if err != nil {
		return nil, err
	}
	return &LinkResult{Task: toTask, PropagatedChanges: changes}, nil
}

// UnlinkTasks removes `from` from `to`'s predecessor list and propagates
// the resulting date changes.
func (e Env) UnlinkTasks(companyCode, projectCode, from, to string) (*LinkResult, error) {
	toTask, err := e.Reg.Tasks.FindByCode(companyCode, projectCode, to)
	if err != nil {
		return nil, err
	}
	toTask.RemovePredecessor(from, e.Clock.Now())
	if err := e.Reg.Tasks.Save(companyCode, toTask); err != nil {
		return nil, err
	}

	changes, err := e.propagate(companyCode, projectCode, to)
	if err != nil {
		return nil, err
	}
	return &LinkResult{Task: toTask, PropagatedChanges: changes}, nil
}
