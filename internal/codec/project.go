package codec

import (
	"time"

	"github.com/taskrevolution/ttr/internal/entity"
)

type vacationPolicySpec struct {
	MaxConcurrentVacations int `yaml:"maxConcurrentVacations,omitempty"`
}

type projectSpec struct {
	CompanyCode    string              `yaml:"companyCode"`
	Name           string              `yaml:"name"`
	Description    string              `yaml:"description,omitempty"`
	Timezone       string              `yaml:"timezone,omitempty"`
	StartDate      *time.Time          `yaml:"startDate,omitempty"`
	EndDate        *time.Time          `yaml:"endDate,omitempty"`
	Status         string              `yaml:"status"`
	VacationPolicy *vacationPolicySpec `yaml:"vacationPolicy,omitempty"`
}

// EncodeProject renders p as a deterministic YAML manifest.
func EncodeProject(p *entity.Project) ([]byte, error) {
	spec := projectSpec{
		CompanyCode: p.CompanyCode,
		Name:        p.Name,
		Description: p.Description,
		Timezone:    p.Timezone,
		StartDate:   p.StartDate,
		EndDate:     p.EndDate,
		Status:      string(p.Status),
	}
	if p.VacationPolicy != nil {
		spec.VacationPolicy = &vacationPolicySpec{MaxConcurrentVacations: p.VacationPolicy.MaxConcurrentVacations}
	}
	env := envelope{
		APIVersion: APIVersion,
		Kind:       string(KindProject),
		Metadata: metadata{
			ID:        p.ID,
			Code:      p.Code,
			CreatedAt: p.CreatedAt,
			UpdatedAt: p.UpdatedAt,
			CreatedBy: p.CreatedBy,
		},
		Spec: spec,
	}
	return marshalEnvelope(env)
}

// DecodeProject parses data as a Project manifest.
func DecodeProject(path string, data []byte) (*entity.Project, []SchemaWarning, error) {
	r, warnings, err := decodeRaw(path, data, KindProject)
	if err != nil {
		return nil, nil, err
	}

	var spec projectSpec
	specWarnings, err := remarshal(r.Spec, &spec)
	if err != nil {
		return nil, nil, &SchemaViolationError{Field: "spec", Reason: err.Error()}
	}
	warnings = append(warnings, specWarnings...)
	if spec.CompanyCode == "" {
		return nil, nil, &SchemaViolationError{Field: "spec.companyCode", Reason: "must reference an owning company"}
	}
	if spec.StartDate != nil && spec.EndDate != nil && spec.StartDate.After(*spec.EndDate) {
		return nil, nil, &SchemaViolationError{Field: "spec.startDate", Reason: "must not be after endDate"}
	}

	p := &entity.Project{
		Audit: entity.Audit{
			CreatedAt: r.Metadata.CreatedAt,
			UpdatedAt: r.Metadata.UpdatedAt,
			CreatedBy: r.Metadata.CreatedBy,
		},
		ID:          r.Metadata.ID,
		Code:        r.Metadata.Code,
		CompanyCode: spec.CompanyCode,
		Name:        spec.Name,
		Description: spec.Description,
		Timezone:    spec.Timezone,
		StartDate:   spec.StartDate,
		EndDate:     spec.EndDate,
		Status:      entity.ProjectStatus(orDefault(spec.Status, string(entity.ProjectPlanned))),
	}
	if spec.VacationPolicy != nil {
		p.VacationPolicy = &entity.VacationPolicy{MaxConcurrentVacations: spec.VacationPolicy.MaxConcurrentVacations}
	}
	return p, warnings, nil
}
