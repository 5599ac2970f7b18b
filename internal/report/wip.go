package report

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/taskrevolution/ttr/internal/entity"
)

// WIPHeader is the stable column order for `report wip`.
var WIPHeader = []string{"resource", "concurrentAssignments", "limit"}

// WriteWIPCSV emits one row per resource with its peak concurrent
// assignment count (§4.H "report wip: per-resource concurrent-assignment
// counts").
func WriteWIPCSV(w io.Writer, resources []*entity.Resource, limit int) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(WIPHeader); err != nil {
		return err
	}
	for _, r := range resources {
		if err := cw.Write([]string{r.Code, strconv.Itoa(peakConcurrency(r)), strconv.Itoa(limit)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func peakConcurrency(r *entity.Resource) int {
	peak := 0
	for i, a := range r.Assignments {
		concurrent := 1
		for j, other := range r.Assignments {
			if i == j {
				continue
			}
			if a.Overlaps(other.Start, other.End) {
				concurrent++
			}
		}
		if concurrent > peak {
			peak = concurrent
		}
	}
	return peak
}
