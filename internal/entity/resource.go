package entity

import "time"

// ResourceScope tags whether a resource lives under a Company or a Project.
type ResourceScope string

const (
	ScopeCompany ResourceScope = "Company"
	ScopeProject ResourceScope = "Project"
)

// ResourceStatus is derived from current allocations, never set directly
// except for the terminal Inactive state (§4.B).
type ResourceStatus string

const (
	ResourceAvailable ResourceStatus = "Available"
	ResourceAssigned  ResourceStatus = "Assigned"
	ResourceInactive  ResourceStatus = "Inactive"
)

// VacationType enumerates the kinds of time-off period a resource may log.
type VacationType string

const (
	VacationVacation   VacationType = "Vacation"
	VacationSickLeave  VacationType = "SickLeave"
	VacationPersonal   VacationType = "PersonalLeave"
	VacationBirthday   VacationType = "BirthdayBreak"
	VacationDayOff     VacationType = "DayOff"
	VacationTimeOffCmp VacationType = "TimeOffCompensation"
	VacationTimeOff    VacationType = "TimeOff"
)

// VacationPeriod is one time-off entry for a resource (§3.1).
type VacationPeriod struct {
	StartDate         time.Time
	EndDate           time.Time
	Approved          bool
	Type              VacationType
	IsLayoff          bool
	CompensatedHours  *float64
}

// Overlaps reports whether two periods share at least one day.
func (v VacationPeriod) Overlaps(other VacationPeriod) bool {
	return !v.EndDate.Before(other.StartDate) && !other.EndDate.Before(v.StartDate)
}

// ProjectAssignment is one resource-to-project allocation.
type ProjectAssignment struct {
	ProjectCode string
	Start       time.Time
	End         time.Time
	Allocation  int // percent, [0,100]
}

// Overlaps reports whether this assignment's window intersects [start,end].
func (a ProjectAssignment) Overlaps(start, end time.Time) bool {
	return !a.End.Before(start) && !end.Before(a.Start)
}

// Resource is owned by a Company (company scope) or a Project (project
// scope).
type Resource struct {
	Audit
	ID              string
	Code            string
	Name            string
	Email           string
	ResourceType    string
	Scope           ResourceScope
	CompanyCode     string
	OwningProjectID string // set when Scope == ScopeProject
	Status          ResourceStatus
	StartDate       *time.Time
	EndDate         *time.Time
	TimeOffBalance  float64
	Vacations       []VacationPeriod
	Assignments     []ProjectAssignment
}

// NewCompanyResource constructs a company-scope resource.
func NewCompanyResource(id, code, name, resourceType, companyCode, createdBy string, now time.Time) *Resource {
	return &Resource{
		Audit:        newAudit(createdBy, now),
		ID:           id,
		Code:         code,
		Name:         name,
		ResourceType: resourceType,
		Scope:        ScopeCompany,
		CompanyCode:  companyCode,
		Status:       ResourceAvailable,
	}
}

// NewProjectResource constructs a project-scope resource.
func NewProjectResource(id, code, name, resourceType, companyCode, owningProjectID, createdBy string, now time.Time) *Resource {
	r := NewCompanyResource(id, code, name, resourceType, companyCode, createdBy, now)
	r.Scope = ScopeProject
	r.OwningProjectID = owningProjectID
	return r
}

// RecomputeStatus derives Available/Assigned from current assignments as
// of `asOf`, leaving an Inactive resource untouched (Inactive is terminal
// until Reactivate, §4.B).
func (r *Resource) RecomputeStatus(asOf time.Time) {
	if r.Status == ResourceInactive {
		return
	}
	for _, a := range r.Assignments {
		if !a.Start.After(asOf) && !a.End.Before(asOf) {
			r.Status = ResourceAssigned
			return
		}
	}
	r.Status = ResourceAvailable
}

// Deactivate soft-deletes the resource (idempotent, invariant 7).
func (r *Resource) Deactivate(now time.Time) error {
	if r.Status == ResourceInactive {
		return &AlreadyDeletedWarning{Kind: "resource", Code: r.Code}
	}
	r.Status = ResourceInactive
	r.touch(now)
	return nil
}

// Reactivate clears Inactive and recomputes status from assignments
// (§4.B: "Reactivation clears Inactive and recomputes status").
func (r *Resource) Reactivate(asOf, now time.Time) {
	r.Status = ResourceAvailable
	r.touch(now)
	r.RecomputeStatus(asOf)
}

// AddAssignment appends a project assignment and recomputes status.
func (r *Resource) AddAssignment(a ProjectAssignment, asOf, now time.Time) {
	r.Assignments = append(r.Assignments, a)
	r.touch(now)
	r.RecomputeStatus(asOf)
}

// AddVacation appends a vacation period. Overlap validation is a
// Validation Framework concern (§4.F VacationRules), not enforced here.
func (r *Resource) AddVacation(v VacationPeriod, now time.Time) {
	r.Vacations = append(r.Vacations, v)
	r.touch(now)
}

// NonLayoffVacations returns only the vacation periods that are not
// layoff-type, the set invariant 4 requires to be pairwise disjoint.
func (r *Resource) NonLayoffVacations() []VacationPeriod {
	var out []VacationPeriod
	for _, v := range r.Vacations {
		if !v.IsLayoff {
			out = append(out, v)
		}
	}
	return out
}
