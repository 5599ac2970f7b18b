package entity

import "time"

// WorkingHours bounds the work day; Start must be before End.
type WorkingHours struct {
	Start int // minutes past midnight
	End   int
}

// VacationRules is the workspace-wide vacation policy referenced by §3.1
// and validated by §4.F's VacationRules.
type VacationRules struct {
	AllowConcurrentLayoffVacations bool
	RequireLayoffVacationPeriod    bool
	MaxConcurrentVacations         int
	LayoffPeriods                  []VacationPeriod
}

// Config is the single workspace-wide manifest (§3.1).
type Config struct {
	Audit
	ManagerName        string
	ManagerEmail       string
	DefaultTimezone    string
	WorkingHours       WorkingHours
	WorkingDays        []time.Weekday
	Currency           string
	Locale             string
	DateFormat         string
	DefaultTaskDuration float64 // hours
	ResourceTypes      []string
	VacationRules      VacationRules
	MaxActiveTasks     int // default WIP limit, §4.F WIPRule
}

// NewConfig constructs a Config with the working-week defaults a freshly
// initialized workspace carries until the operator edits config.yaml.
func NewConfig(managerName, managerEmail, createdBy string, now time.Time) *Config {
	return &Config{
		Audit:               newAudit(createdBy, now),
		ManagerName:         managerName,
		ManagerEmail:        managerEmail,
		DefaultTimezone:     "UTC",
		WorkingHours:        WorkingHours{Start: 9 * 60, End: 17 * 60},
		WorkingDays:         []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday},
		Currency:            "USD",
		Locale:              "en-US",
		DateFormat:          "2006-01-02",
		DefaultTaskDuration: 8,
		ResourceTypes:       []string{"Developer", "Designer", "Manager", "QA"},
		MaxActiveTasks:      5,
		VacationRules: VacationRules{
			MaxConcurrentVacations: 1,
		},
	}
}

// IsWorkingDay reports whether d is a declared working day.
func (c *Config) IsWorkingDay(d time.Weekday) bool {
	for _, wd := range c.WorkingDays {
		if wd == d {
			return true
		}
	}
	return false
}

// HasResourceType reports whether t is a declared resource type
// (§4.F ResourceTypeRule).
func (c *Config) HasResourceType(t string) bool {
	for _, rt := range c.ResourceTypes {
		if rt == t {
			return true
		}
	}
	return false
}
