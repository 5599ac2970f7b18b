package schedule

import (
	"time"

	"github.com/taskrevolution/ttr/internal/entity"
)

// Calendar is the working-time model Advance walks over: which weekdays
// count as working days, the working-hours window (minutes past
// midnight), and any whole-day holidays (§4.G "Inputs").
type Calendar struct {
	WorkingDays map[time.Weekday]bool
	WorkStart   int // minutes past midnight
	WorkEnd     int
	Holidays    map[string]bool // "2006-01-02"
}

const dateLayout = "2006-01-02"

// NewCalendar builds a Calendar from the workspace Config's working-hours
// and working-days declarations.
func NewCalendar(cfg *entity.Config) *Calendar {
	days := map[time.Weekday]bool{}
	for _, d := range cfg.WorkingDays {
		days[d] = true
	}
	return &Calendar{
		WorkingDays: days,
		WorkStart:   cfg.WorkingHours.Start,
		WorkEnd:     cfg.WorkingHours.End,
		Holidays:    map[string]bool{},
	}
}

// WithHolidays returns a copy of the calendar with the given whole-day
// holidays added.
func (c *Calendar) WithHolidays(dates []time.Time) *Calendar {
	out := &Calendar{WorkingDays: c.WorkingDays, WorkStart: c.WorkStart, WorkEnd: c.WorkEnd, Holidays: map[string]bool{}}
	for k := range c.Holidays {
		out.Holidays[k] = true
	}
	for _, d := range dates {
		out.Holidays[d.Format(dateLayout)] = true
	}
	return out
}

func (c *Calendar) hasAnyWorkingDay() bool {
	for _, working := range c.WorkingDays {
		if working {
			return true
		}
	}
	return false
}

func (c *Calendar) isWorkingDay(d time.Time) bool {
	if !c.WorkingDays[d.Weekday()] {
		return false
	}
	return !c.Holidays[d.Format(dateLayout)]
}

func onVacation(d time.Time, vacations []entity.VacationPeriod) bool {
	for _, v := range vacations {
		if !d.Before(dayStart(v.StartDate)) && !d.After(dayEnd(v.EndDate)) {
			return true
		}
	}
	return false
}

func dayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func dayEnd(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, t.Location())
}

func atMinute(d time.Time, minute int) time.Time {
	return time.Date(d.Year(), d.Month(), d.Day(), 0, minute, 0, 0, d.Location())
}

// nextWorkStart advances to the next calendar day's work-start instant.
func nextWorkStart(cur time.Time, cal *Calendar) time.Time {
	next := cur.AddDate(0, 0, 1)
	return atMinute(next, cal.WorkStart)
}

// Advance moves `start` forward by `hours` of working time, skipping
// non-working days, hours outside the working window, and (when
// vacations is non-nil) days inside any listed vacation period
// (§4.G.3: "advance skips non-working days and excluded hours;
// resource vacations are skipped only for tasks where exactly one
// resource is assigned").
func Advance(start time.Time, hours float64, cal *Calendar, vacations []entity.VacationPeriod) time.Time {
	dayMinutes := cal.WorkEnd - cal.WorkStart
	if dayMinutes <= 0 || hours <= 0 {
		return start
	}
	remaining := hours * 60

	cur := start
	minuteOfDay := cur.Hour()*60 + cur.Minute()
	if minuteOfDay < cal.WorkStart {
		cur = atMinute(cur, cal.WorkStart)
	} else if minuteOfDay >= cal.WorkEnd {
		cur = nextWorkStart(cur, cal)
	}

	for remaining > 0 {
		if !cal.isWorkingDay(cur) || onVacation(cur, vacations) {
			cur = nextWorkStart(cur, cal)
			continue
		}
		minuteOfDay = cur.Hour()*60 + cur.Minute()
		available := float64(cal.WorkEnd - minuteOfDay)
		if available <= 0 {
			cur = nextWorkStart(cur, cal)
			continue
		}
		if remaining <= available {
			cur = cur.Add(time.Duration(remaining) * time.Minute)
			remaining = 0
		} else {
			remaining -= available
			cur = nextWorkStart(cur, cal)
		}
	}
	return cur
}
