package entity

import "time"

// ProjectStatus is the project's typestate tag (§4.B).
type ProjectStatus string

const (
	ProjectPlanned    ProjectStatus = "Planned"
	ProjectInProgress ProjectStatus = "InProgress"
	ProjectOnHold     ProjectStatus = "OnHold"
	ProjectCompleted  ProjectStatus = "Completed"
	ProjectCancelled  ProjectStatus = "Cancelled"
)

// VacationPolicy holds the project-level override of the workspace's
// vacation rules (§3.1 Project.vacation-rules block).
type VacationPolicy struct {
	MaxConcurrentVacations int
}

// Project is owned by exactly one Company.
type Project struct {
	Audit
	ID             string
	Code           string
	CompanyCode    string
	Name           string
	Description    string
	Timezone       string
	StartDate      *time.Time
	EndDate        *time.Time
	Status         ProjectStatus
	VacationPolicy *VacationPolicy
}

// NewProject constructs a Planned project owned by companyCode.
func NewProject(id, code, companyCode, name, createdBy string, now time.Time) *Project {
	return &Project{
		Audit:       newAudit(createdBy, now),
		ID:          id,
		Code:        code,
		CompanyCode: companyCode,
		Name:        name,
		Status:      ProjectPlanned,
	}
}

var projectTransitions = map[ProjectStatus]map[ProjectStatus]bool{
	ProjectPlanned:    {ProjectInProgress: true, ProjectCancelled: true},
	ProjectInProgress: {ProjectOnHold: true, ProjectCompleted: true, ProjectCancelled: true},
	ProjectOnHold:     {ProjectInProgress: true, ProjectCancelled: true},
	ProjectCompleted:  {ProjectCancelled: true}, // reopening handled by Reopen, not Transition
	ProjectCancelled:  {},
}

// Transition moves the project to `to`, enforcing the state graph in §4.B.
func (p *Project) Transition(to ProjectStatus, now time.Time) error {
	if p.Status == to {
		return nil
	}
	if allowed, ok := projectTransitions[p.Status]; !ok || !allowed[to] {
		return &TransitionError{Kind: "project", Code: p.Code, From: string(p.Status), To: string(to)}
	}
	p.Status = to
	p.touch(now)
	return nil
}

// Reopen returns a Completed project to InProgress. The entity only
// enforces which states are reachable; it performs no authorization
// check, and no use-case in this repository calls Reopen.
func (p *Project) Reopen(now time.Time) error {
	if p.Status != ProjectCompleted {
		return &TransitionError{Kind: "project", Code: p.Code, From: string(p.Status), To: string(ProjectInProgress)}
	}
	p.Status = ProjectInProgress
	p.touch(now)
	return nil
}

// Mutable reports whether plain field setters (name, description, dates)
// are legal in the project's current state (§4.B: legal in Planned and
// InProgress; Completed forbids further mutation).
func (p *Project) Mutable() bool {
	return p.Status == ProjectPlanned || p.Status == ProjectInProgress
}

// SetDates sets start/end, rejecting any attempt to clear a date once set
// and any start > end ordering (§3.1, §4.F TemporalRules).
func (p *Project) SetDates(start, end *time.Time, now time.Time) error {
	if !p.Mutable() {
		return &TransitionError{Kind: "project", Code: p.Code, From: string(p.Status), To: "mutated"}
	}
	if p.StartDate != nil && start == nil {
		return &TransitionError{Kind: "project", Code: p.Code, From: "start-set", To: "start-cleared"}
	}
	if p.EndDate != nil && end == nil {
		return &TransitionError{Kind: "project", Code: p.Code, From: "end-set", To: "end-cleared"}
	}
	if start != nil && end != nil && start.After(*end) {
		return &TransitionError{Kind: "project", Code: p.Code, From: "start<=end", To: "start>end"}
	}
	p.StartDate = start
	p.EndDate = end
	p.touch(now)
	return nil
}

// Delete soft-deletes the project (idempotent: Cancelled twice is a
// success, per invariant 7).
func (p *Project) Delete(now time.Time) error {
	if p.Status == ProjectCancelled {
		return &AlreadyDeletedWarning{Kind: "project", Code: p.Code}
	}
	p.Status = ProjectCancelled
	p.touch(now)
	return nil
}
