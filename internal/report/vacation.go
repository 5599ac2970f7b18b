// Package report renders CSV and tabular views of workspace state (§4.H
// "Reports"): one row-builder per report kind, each writing encoding/csv
// rows under a fixed header. The CLI's `ls` tabular output does not use
// this package.
package report

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/taskrevolution/ttr/internal/entity"
)

// VacationHeader is the stable column order for `report vacation`.
var VacationHeader = []string{"resource", "start", "end", "type", "approved", "layoff"}

// VacationRow is one CSV row of `report vacation`.
type VacationRow struct {
	ResourceCode string
	Period       entity.VacationPeriod
}

func (r VacationRow) cells() []string {
	return []string{
		r.ResourceCode,
		r.Period.StartDate.Format(dateLayout),
		r.Period.EndDate.Format(dateLayout),
		string(r.Period.Type),
		strconv.FormatBool(r.Period.Approved),
		strconv.FormatBool(r.Period.IsLayoff),
	}
}

const dateLayout = "2006-01-02"

// WriteVacationCSV emits one row per vacation period across resources,
// column order and header stable (§4.H).
func WriteVacationCSV(w io.Writer, resources []*entity.Resource) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(VacationHeader); err != nil {
		return err
	}
	for _, r := range resources {
		for _, v := range r.Vacations {
			row := VacationRow{ResourceCode: r.Code, Period: v}
			if err := cw.Write(row.cells()); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}
