package codec

import (
	"time"

	"github.com/taskrevolution/ttr/internal/entity"
)

type commentSpec struct {
	Author  string    `yaml:"author"`
	At      time.Time `yaml:"at"`
	Message string    `yaml:"message"`
}

type taskSpec struct {
	ProjectCode        string        `yaml:"projectCode"`
	Name               string        `yaml:"name"`
	Description        string        `yaml:"description,omitempty"`
	Status             string        `yaml:"status"`
	Priority           string        `yaml:"priority"`
	Category           string        `yaml:"category,omitempty"`
	StartDate          time.Time     `yaml:"startDate"`
	DueDate            time.Time     `yaml:"dueDate"`
	ActualStart        *time.Time    `yaml:"actualStart,omitempty"`
	ActualEnd          *time.Time    `yaml:"actualEnd,omitempty"`
	EstimatedHours     float64       `yaml:"estimatedHours"`
	ActualHours        *float64      `yaml:"actualHours,omitempty"`
	Predecessors       []string      `yaml:"predecessors,omitempty"`
	AssignedResources  []string      `yaml:"assignedResources,omitempty"`
	AcceptanceCriteria []string      `yaml:"acceptanceCriteria,omitempty"`
	Comments           []commentSpec `yaml:"comments,omitempty"`
}

// EncodeTask renders t as a deterministic YAML manifest.
func EncodeTask(t *entity.Task) ([]byte, error) {
	spec := taskSpec{
		ProjectCode:        t.ProjectCode,
		Name:               t.Name,
		Description:        t.Description,
		Status:             string(t.Status),
		Priority:           string(t.Priority),
		Category:           t.Category,
		StartDate:          t.StartDate,
		DueDate:            t.DueDate,
		ActualStart:        t.ActualStart,
		ActualEnd:          t.ActualEnd,
		EstimatedHours:     t.EstimatedHours,
		ActualHours:        t.ActualHours,
		Predecessors:       t.Predecessors,
		AssignedResources:  t.AssignedResources,
		AcceptanceCriteria: t.AcceptanceCriteria,
	}
	for _, c := range t.Comments {
		spec.Comments = append(spec.Comments, commentSpec{Author: c.Author, At: c.At, Message: c.Message})
	}
	env := envelope{
		APIVersion: APIVersion,
		Kind:       string(KindTask),
		Metadata: metadata{
			ID:        t.ID,
			Code:      t.Code,
			CreatedAt: t.CreatedAt,
			UpdatedAt: t.UpdatedAt,
			CreatedBy: t.CreatedBy,
		},
		Spec: spec,
	}
	return marshalEnvelope(env)
}

// DecodeTask parses data as a Task manifest.
func DecodeTask(path string, data []byte) (*entity.Task, []SchemaWarning, error) {
	r, warnings, err := decodeRaw(path, data, KindTask)
	if err != nil {
		return nil, nil, err
	}

	var spec taskSpec
	specWarnings, err := remarshal(r.Spec, &spec)
	if err != nil {
		return nil, nil, &SchemaViolationError{Field: "spec", Reason: err.Error()}
	}
	warnings = append(warnings, specWarnings...)
	if spec.ProjectCode == "" {
		return nil, nil, &SchemaViolationError{Field: "spec.projectCode", Reason: "must reference an owning project"}
	}
	if spec.StartDate.After(spec.DueDate) {
		return nil, nil, &SchemaViolationError{Field: "spec.startDate", Reason: "must not be after dueDate"}
	}
	if spec.EstimatedHours < 0 {
		return nil, nil, &SchemaViolationError{Field: "spec.estimatedHours", Reason: "must not be negative"}
	}

	t := &entity.Task{
		Audit: entity.Audit{
			CreatedAt: r.Metadata.CreatedAt,
			UpdatedAt: r.Metadata.UpdatedAt,
			CreatedBy: r.Metadata.CreatedBy,
		},
		ID:                 r.Metadata.ID,
		Code:               r.Metadata.Code,
		ProjectCode:        spec.ProjectCode,
		Name:               spec.Name,
		Description:        spec.Description,
		Status:             entity.TaskStatus(orDefault(spec.Status, string(entity.TaskPlanned))),
		Priority:           entity.TaskPriority(orDefault(spec.Priority, string(entity.PriorityMedium))),
		Category:           spec.Category,
		StartDate:          spec.StartDate,
		DueDate:            spec.DueDate,
		ActualStart:        spec.ActualStart,
		ActualEnd:          spec.ActualEnd,
		EstimatedHours:     spec.EstimatedHours,
		ActualHours:        spec.ActualHours,
		Predecessors:       spec.Predecessors,
		AssignedResources:  spec.AssignedResources,
		AcceptanceCriteria: spec.AcceptanceCriteria,
	}
	for _, c := range spec.Comments {
		t.Comments = append(t.Comments, entity.Comment{Author: c.Author, At: c.At, Message: c.Message})
	}
	return t, warnings, nil
}
