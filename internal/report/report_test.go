package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/taskrevolution/ttr/internal/entity"
)

var fixedNow = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func TestWriteVacationCSVHeaderAndRow(t *testing.T) {
	r := entity.NewCompanyResource("rid", "DEV1", "Dev One", "Developer", "ACME", "tester", fixedNow)
	r.Vacations = []entity.VacationPeriod{
		{StartDate: fixedNow, EndDate: fixedNow.AddDate(0, 0, 5), Type: entity.VacationVacation, Approved: true},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteVacationCSV(&buf, []*entity.Resource{r}))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	require.Equal(t, "resource,start,end,type,approved,layoff", lines[0])
	require.Contains(t, lines[1], "DEV1")
	require.Contains(t, lines[1], "Vacation")
}

func TestWriteTaskCSVHeader(t *testing.T) {
	task := entity.NewTask("tid", "DESIGN", "WEBSITE", "Design", "tester", fixedNow, fixedNow.AddDate(0, 0, 3), 8, fixedNow)

	var buf bytes.Buffer
	require.NoError(t, WriteTaskCSV(&buf, []TaskRow{{ProjectCode: "WEBSITE", Task: task}}))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	require.Equal(t, TaskHeader, strings.Split(lines[0], ","))
}

func TestWriteWIPCSVReportsConcurrency(t *testing.T) {
	r := entity.NewCompanyResource("rid", "DEV1", "Dev One", "Developer", "ACME", "tester", fixedNow)
	r.Assignments = []entity.ProjectAssignment{
		{ProjectCode: "WEBSITE", Start: fixedNow, End: fixedNow.AddDate(0, 0, 5), Allocation: 100},
		{ProjectCode: "MOBILE", Start: fixedNow, End: fixedNow.AddDate(0, 0, 3), Allocation: 100},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteWIPCSV(&buf, []*entity.Resource{r}, 1))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Equal(t, "DEV1,2,1", lines[1])
}
