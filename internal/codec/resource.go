package codec

import (
	"time"

	"github.com/taskrevolution/ttr/internal/entity"
)

type vacationPeriodSpec struct {
	StartDate        time.Time `yaml:"startDate"`
	EndDate          time.Time `yaml:"endDate"`
	Approved         bool      `yaml:"approved"`
	Type             string    `yaml:"type"`
	IsLayoff         bool      `yaml:"isLayoff,omitempty"`
	CompensatedHours *float64  `yaml:"compensatedHours,omitempty"`
}

type projectAssignmentSpec struct {
	ProjectCode string    `yaml:"projectCode"`
	Start       time.Time `yaml:"start"`
	End         time.Time `yaml:"end"`
	Allocation  int       `yaml:"allocation"`
}

type resourceSpec struct {
	Name            string                  `yaml:"name"`
	Email           string                  `yaml:"email,omitempty"`
	ResourceType    string                  `yaml:"resourceType"`
	Scope           string                  `yaml:"scope"`
	CompanyCode     string                  `yaml:"companyCode"`
	OwningProjectID string                  `yaml:"owningProjectId,omitempty"`
	Status          string                  `yaml:"status"`
	StartDate       *time.Time              `yaml:"startDate,omitempty"`
	EndDate         *time.Time              `yaml:"endDate,omitempty"`
	TimeOffBalance  float64                 `yaml:"timeOffBalance,omitempty"`
	Vacations       []vacationPeriodSpec    `yaml:"vacations,omitempty"`
	Assignments     []projectAssignmentSpec `yaml:"assignments,omitempty"`
}

// EncodeResource renders r as a deterministic YAML manifest.
func EncodeResource(r *entity.Resource) ([]byte, error) {
	spec := resourceSpec{
		Name:            r.Name,
		Email:           r.Email,
		ResourceType:    r.ResourceType,
		Scope:           string(r.Scope),
		CompanyCode:     r.CompanyCode,
		OwningProjectID: r.OwningProjectID,
		Status:          string(r.Status),
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		TimeOffBalance:  r.TimeOffBalance,
	}
	for _, v := range r.Vacations {
		spec.Vacations = append(spec.Vacations, vacationPeriodSpec{
			StartDate: v.StartDate, EndDate: v.EndDate, Approved: v.Approved,
			Type: string(v.Type), IsLayoff: v.IsLayoff, CompensatedHours: v.CompensatedHours,
		})
	}
	for _, a := range r.Assignments {
		spec.Assignments = append(spec.Assignments, projectAssignmentSpec{
			ProjectCode: a.ProjectCode, Start: a.Start, End: a.End, Allocation: a.Allocation,
		})
	}
	env := envelope{
		APIVersion: APIVersion,
		Kind:       string(KindResource),
		Metadata: metadata{
			ID:        r.ID,
			Code:      r.Code,
			CreatedAt: r.CreatedAt,
			UpdatedAt: r.UpdatedAt,
			CreatedBy: r.CreatedBy,
		},
		Spec: spec,
	}
	return marshalEnvelope(env)
}

// DecodeResource parses data as a Resource manifest.
func DecodeResource(path string, data []byte) (*entity.Resource, []SchemaWarning, error) {
	r, warnings, err := decodeRaw(path, data, KindResource)
	if err != nil {
		return nil, nil, err
	}

	var spec resourceSpec
	specWarnings, err := remarshal(r.Spec, &spec)
	if err != nil {
		return nil, nil, &SchemaViolationError{Field: "spec", Reason: err.Error()}
	}
	warnings = append(warnings, specWarnings...)
	if spec.ResourceType == "" {
		return nil, nil, &SchemaViolationError{Field: "spec.resourceType", Reason: "must not be empty"}
	}

	res := &entity.Resource{
		Audit: entity.Audit{
			CreatedAt: r.Metadata.CreatedAt,
			UpdatedAt: r.Metadata.UpdatedAt,
			CreatedBy: r.Metadata.CreatedBy,
		},
		ID:              r.Metadata.ID,
		Code:            r.Metadata.Code,
		Name:            spec.Name,
		Email:           spec.Email,
		ResourceType:    spec.ResourceType,
		Scope:           entity.ResourceScope(orDefault(spec.Scope, string(entity.ScopeCompany))),
		CompanyCode:     spec.CompanyCode,
		OwningProjectID: spec.OwningProjectID,
		Status:          entity.ResourceStatus(orDefault(spec.Status, string(entity.ResourceAvailable))),
		StartDate:       spec.StartDate,
		EndDate:         spec.EndDate,
		TimeOffBalance:  spec.TimeOffBalance,
	}
	for _, v := range spec.Vacations {
		res.Vacations = append(res.Vacations, entity.VacationPeriod{
			StartDate: v.StartDate, EndDate: v.EndDate, Approved: v.Approved,
			Type: entity.VacationType(v.Type), IsLayoff: v.IsLayoff, CompensatedHours: v.CompensatedHours,
		})
	}
	for _, a := range spec.Assignments {
		res.Assignments = append(res.Assignments, entity.ProjectAssignment{
			ProjectCode: a.ProjectCode, Start: a.Start, End: a.End, Allocation: a.Allocation,
		})
	}
	return res, warnings, nil
}
