package codec

import (
	"time"

	"github.com/taskrevolution/ttr/internal/entity"
)

type workingHoursSpec struct {
	Start int `yaml:"start"`
	End   int `yaml:"end"`
}

type vacationRulesSpec struct {
	AllowConcurrentLayoffVacations bool                 `yaml:"allowConcurrentLayoffVacations,omitempty"`
	RequireLayoffVacationPeriod    bool                 `yaml:"requireLayoffVacationPeriod,omitempty"`
	MaxConcurrentVacations         int                   `yaml:"maxConcurrentVacations,omitempty"`
	LayoffPeriods                  []vacationPeriodSpec `yaml:"layoffPeriods,omitempty"`
}

type configSpec struct {
	ManagerName         string            `yaml:"managerName"`
	ManagerEmail        string            `yaml:"managerEmail"`
	DefaultTimezone     string            `yaml:"defaultTimezone"`
	WorkingHours        workingHoursSpec  `yaml:"workingHours"`
	WorkingDays         []int             `yaml:"workingDays"`
	Currency            string            `yaml:"currency,omitempty"`
	Locale              string            `yaml:"locale,omitempty"`
	DateFormat          string            `yaml:"dateFormat,omitempty"`
	DefaultTaskDuration float64           `yaml:"defaultTaskDuration,omitempty"`
	ResourceTypes       []string          `yaml:"resourceTypes"`
	VacationRules       vacationRulesSpec `yaml:"vacationRules"`
	MaxActiveTasks      int               `yaml:"maxActiveTasks,omitempty"`
}

// EncodeConfig renders c as a deterministic YAML manifest.
func EncodeConfig(c *entity.Config) ([]byte, error) {
	spec := configSpec{
		ManagerName:         c.ManagerName,
		ManagerEmail:        c.ManagerEmail,
		DefaultTimezone:     c.DefaultTimezone,
		WorkingHours:        workingHoursSpec{Start: c.WorkingHours.Start, End: c.WorkingHours.End},
		Currency:            c.Currency,
		Locale:              c.Locale,
		DateFormat:          c.DateFormat,
		DefaultTaskDuration: c.DefaultTaskDuration,
		ResourceTypes:       c.ResourceTypes,
		MaxActiveTasks:      c.MaxActiveTasks,
		VacationRules: vacationRulesSpec{
			AllowConcurrentLayoffVacations: c.VacationRules.AllowConcurrentLayoffVacations,
			RequireLayoffVacationPeriod:    c.VacationRules.RequireLayoffVacationPeriod,
			MaxConcurrentVacations:         c.VacationRules.MaxConcurrentVacations,
		},
	}
	for _, d := range c.WorkingDays {
		spec.WorkingDays = append(spec.WorkingDays, int(d))
	}
	for _, p := range c.VacationRules.LayoffPeriods {
		spec.VacationRules.LayoffPeriods = append(spec.VacationRules.LayoffPeriods, vacationPeriodSpec{
			StartDate: p.StartDate, EndDate: p.EndDate, Approved: p.Approved,
			Type: string(p.Type), IsLayoff: p.IsLayoff, CompensatedHours: p.CompensatedHours,
		})
	}
	env := envelope{
		APIVersion: APIVersion,
		Kind:       string(KindConfig),
		Metadata: metadata{
			ID:        "config",
			CreatedAt: c.CreatedAt,
			UpdatedAt: c.UpdatedAt,
			CreatedBy: c.CreatedBy,
		},
		Spec: spec,
	}
	return marshalEnvelope(env)
}

// DecodeConfig parses data as the workspace Config manifest.
func DecodeConfig(path string, data []byte) (*entity.Config, []SchemaWarning, error) {
	r, warnings, err := decodeRaw(path, data, KindConfig)
	if err != nil {
		return nil, nil, err
	}

	var spec configSpec
	specWarnings, err := remarshal(r.Spec, &spec)
	if err != nil {
		return nil, nil, &SchemaViolationError{Field: "spec", Reason: err.Error()}
	}
	warnings = append(warnings, specWarnings...)
	if spec.WorkingHours.Start >= spec.WorkingHours.End {
		return nil, nil, &SchemaViolationError{Field: "spec.workingHours", Reason: "start must be before end"}
	}

	c := &entity.Config{
		Audit: entity.Audit{
			CreatedAt: r.Metadata.CreatedAt,
			UpdatedAt: r.Metadata.UpdatedAt,
			CreatedBy: r.Metadata.CreatedBy,
		},
		ManagerName:         spec.ManagerName,
		ManagerEmail:        spec.ManagerEmail,
		DefaultTimezone:     spec.DefaultTimezone,
		WorkingHours:        entity.WorkingHours{Start: spec.WorkingHours.Start, End: spec.WorkingHours.End},
		Currency:            spec.Currency,
		Locale:              spec.Locale,
		DateFormat:          spec.DateFormat,
		DefaultTaskDuration: spec.DefaultTaskDuration,
		ResourceTypes:       spec.ResourceTypes,
		MaxActiveTasks:      spec.MaxActiveTasks,
		VacationRules: entity.VacationRules{
			AllowConcurrentLayoffVacations: spec.VacationRules.AllowConcurrentLayoffVacations,
			RequireLayoffVacationPeriod:    spec.VacationRules.RequireLayoffVacationPeriod,
			MaxConcurrentVacations:         spec.VacationRules.MaxConcurrentVacations,
		},
	}
	for _, d := range spec.WorkingDays {
		c.WorkingDays = append(c.WorkingDays, time.Weekday(d))
	}
	for _, p := range spec.VacationRules.LayoffPeriods {
		c.VacationRules.LayoffPeriods = append(c.VacationRules.LayoffPeriods, entity.VacationPeriod{
			StartDate: p.StartDate, EndDate: p.EndDate, Approved: p.Approved,
			Type: entity.VacationType(p.Type), IsLayoff: p.IsLayoff, CompensatedHours: p.CompensatedHours,
		})
	}
	return c, warnings, nil
}
