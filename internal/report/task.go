package report

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"github.com/taskrevolution/ttr/internal/entity"
	"github.com/taskrevolution/ttr/internal/schedule"
)

// TaskHeader is the stable column order for `report task`.
var TaskHeader = []string{
	"project", "code", "name", "status", "priority",
	"declaredStart", "declaredDue", "computedStart", "computedFinish",
	"estimatedHours", "actualHours", "assignedResources",
}

// TaskRow is one CSV row of `report task`. The computedStart and
// computedFinish cells are empty when no schedule.Window was supplied.
type TaskRow struct {
	ProjectCode string
	Task        *entity.Task
	Window      *schedule.Window
}

func (r TaskRow) cells() []string {
	computedStart, computedFinish := "", ""
	if r.Window != nil {
		computedStart = r.Window.EarliestStart.Format(dateLayout)
		computedFinish = r.Window.EarliestFinish.Format(dateLayout)
	}
	actualHours := ""
	if r.Task.ActualHours != nil {
		actualHours = strconv.FormatFloat(*r.Task.ActualHours, 'f', -1, 64)
	}
	return []string{
		r.ProjectCode,
		r.Task.Code,
		r.Task.Name,
		string(r.Task.Status),
		string(r.Task.Priority),
		r.Task.StartDate.Format(dateLayout),
		r.Task.DueDate.Format(dateLayout),
		computedStart,
		computedFinish,
		strconv.FormatFloat(r.Task.EstimatedHours, 'f', -1, 64),
		actualHours,
		strings.Join(r.Task.AssignedResources, ";"),
	}
}

// WriteTaskCSV emits one row per task, with declared and (optionally)
// computed dates side by side (§4.H "report task").
func WriteTaskCSV(w io.Writer, rows []TaskRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(TaskHeader); err != nil {
		return err
	}
	for _, row := range rows {
		if err := cw.Write(row.cells()); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
