package build

import (
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/taskrevolution/ttr/internal/entity"
	"github.com/taskrevolution/ttr/internal/schedule"
)

// ganttBar is one rendered row of a Gantt chart.
type ganttBar struct {
	Code         string
	Name         string
	Status       entity.TaskStatus
	Start        time.Time
	Finish       time.Time
	Predecessors []string
	Resources    []string
}

const (
	ganttRowHeight  = 28
	ganttLabelWidth = 220
	ganttChartWidth = 760
	ganttPadding    = 16
)

var statusColor = map[entity.TaskStatus]string{
	entity.TaskPlanned:    "#9ca3af",
	entity.TaskToDo:       "#60a5fa",
	entity.TaskInProgress: "#fbbf24",
	entity.TaskDone:       "#34d399",
	entity.TaskBlocked:    "#f87171",
	entity.TaskCancelled:  "#6b7280",
}

// renderGanttSVG draws one horizontal bar per task, ordered topologically
// (§4.G.2 ordering, reused here purely for a deterministic, dependency-
// respecting row order rather than for scheduling), bars spanning each
// task's computed earliest-start/earliest-finish window, colored by
// status, with predecessor codes and assigned resource codes annotated
// alongside the bar (§4.H "gantt.go ... one SVG per company/project
// scope").
func renderGanttSVG(tasks []*entity.Task, cal *schedule.Calendar, resourceVacations map[string][]entity.VacationPeriod) (string, error) {
	if len(tasks) == 0 {
		return `<svg xmlns="http://www.w3.org/2000/svg" width="100" height="40"><text x="8" y="20">no tasks</text></svg>`, nil
	}

	ordered, err := schedule.TopoOrder(tasks)
	if err != nil {
		ordered = tasks
	}

	cache := schedule.NewCache()
	results, err := schedule.Recompute(tasks, cal, resourceVacations, cache)
	if err != nil {
		return "", err
	}
	windowByCode := make(map[string]schedule.Window, len(results))
	for _, r := range results {
		windowByCode[r.Task.Code] = r.Window
	}

	bars := make([]ganttBar, 0, len(ordered))
	minStart, maxFinish := ordered[0].StartDate, ordered[0].DueDate
	for _, t := range ordered {
		w := windowByCode[t.Code]
		bars = append(bars, ganttBar{
			Code: t.Code, Name: t.Name, Status: t.Status,
			Start: w.EarliestStart, Finish: w.EarliestFinish,
			Predecessors: t.Predecessors, Resources: t.AssignedResources,
		})
		if w.EarliestStart.Before(minStart) {
			minStart = w.EarliestStart
		}
		if w.EarliestFinish.After(maxFinish) {
			maxFinish = w.EarliestFinish
		}
	}

	span := maxFinish.Sub(minStart)
	if span <= 0 {
		span = 24 * time.Hour
	}

	height := ganttPadding*2 + len(bars)*ganttRowHeight
	width := ganttLabelWidth + ganttChartWidth + ganttPadding*2

	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" font-family="sans-serif" font-size="12">`, width, height)
	fmt.Fprintf(&b, `<rect width="%d" height="%d" fill="#ffffff"/>`, width, height)

	for i, bar := range bars {
		y := ganttPadding + i*ganttRowHeight
		label := html.EscapeString(fmt.Sprintf("%s  %s", bar.Code, bar.Name))
		fmt.Fprintf(&b, `<text x="%d" y="%d">%s</text>`, ganttPadding, y+18, label)

		offset := float64(bar.Start.Sub(minStart)) / float64(span) * float64(ganttChartWidth)
		barWidth := float64(bar.Finish.Sub(bar.Start)) / float64(span) * float64(ganttChartWidth)
		if barWidth < 2 {
			barWidth = 2
		}
		x := ganttLabelWidth + ganttPadding + offset
		color := statusColor[bar.Status]
		if color == "" {
			color = "#9ca3af"
		}
		fmt.Fprintf(&b, `<rect x="%.1f" y="%d" width="%.1f" height="%d" fill="%s"><title>%s</title></rect>`,
			x, y+4, barWidth, ganttRowHeight-10, color, html.EscapeString(ganttTooltip(bar)))

		if len(bar.Predecessors) > 0 {
			fmt.Fprintf(&b, `<text x="%.1f" y="%d" fill="#6b7280" font-size="10">from %s</text>`,
				x, y+ganttRowHeight-2, html.EscapeString(strings.Join(bar.Predecessors, ",")))
		}
	}

	b.WriteString(`</svg>`)
	return b.String(), nil
}

func ganttTooltip(bar ganttBar) string {
	var parts []string
	parts = append(parts, fmt.Sprintf("%s: %s", bar.Code, bar.Status))
	if len(bar.Resources) > 0 {
		parts = append(parts, "resources: "+strings.Join(bar.Resources, ","))
	}
	return strings.Join(parts, " | ")
}
