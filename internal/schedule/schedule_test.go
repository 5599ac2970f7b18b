package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/taskrevolution/ttr/internal/entity"
)

var fixedNow = time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC) // a Monday

func testCalendar() *Calendar {
	return &Calendar{
		WorkingDays: map[time.Weekday]bool{
			time.Monday: true, time.Tuesday: true, time.Wednesday: true,
			time.Thursday: true, time.Friday: true,
		},
		WorkStart: 9 * 60,
		WorkEnd:   17 * 60,
		Holidays:  map[string]bool{},
	}
}

func TestTopoOrderRespectsPredecessors(t *testing.T) {
	a := entity.NewTask("1", "A", "P", "A", "tester", fixedNow, fixedNow, 8, fixedNow)
	b := entity.NewTask("2", "B", "P", "B", "tester", fixedNow, fixedNow, 8, fixedNow)
	b.Predecessors = []string{"A"}
	c := entity.NewTask("3", "C", "P", "C", "tester", fixedNow, fixedNow, 8, fixedNow)
	c.Predecessors = []string{"B"}

	order, err := TopoOrder([]*entity.Task{c, b, a})
	require.NoError(t, err)
	require.Equal(t, []string{"A", "B", "C"}, codesOf(order))
}

func TestTopoOrderBreaksTiesByCode(t *testing.T) {
	z := entity.NewTask("1", "Z", "P", "Z", "tester", fixedNow, fixedNow, 8, fixedNow)
	a := entity.NewTask("2", "A", "P", "A", "tester", fixedNow, fixedNow, 8, fixedNow)

	order, err := TopoOrder([]*entity.Task{z, a})
	require.NoError(t, err)
	require.Equal(t, []string{"A", "Z"}, codesOf(order))
}

func TestTopoOrderDetectsCycle(t *testing.T) {
	a := entity.NewTask("1", "A", "P", "A", "tester", fixedNow, fixedNow, 8, fixedNow)
	a.Predecessors = []string{"B"}
	b := entity.NewTask("2", "B", "P", "B", "tester", fixedNow, fixedNow, 8, fixedNow)
	b.Predecessors = []string{"A"}

	_, err := TopoOrder([]*entity.Task{a, b})
	require.Error(t, err)
}

func TestWouldCreateCycle(t *testing.T) {
	byCode := map[string]*entity.Task{
		"A": entity.NewTask("1", "A", "P", "A", "tester", fixedNow, fixedNow, 8, fixedNow),
		"B": entity.NewTask("2", "B", "P", "B", "tester", fixedNow, fixedNow, 8, fixedNow),
	}
	byCode["B"].Predecessors = []string{"A"}

	cyclic, _ := WouldCreateCycle(byCode, "B", "A")
	require.True(t, cyclic)

	fine, _ := WouldCreateCycle(byCode, "A", "B")
	require.False(t, fine)
}

func TestAdvanceSkipsWeekend(t *testing.T) {
	cal := testCalendar()
	friday4pm := time.Date(2026, 1, 9, 16, 0, 0, 0, time.UTC)
	finish := Advance(friday4pm, 2, cal, nil)
	require.Equal(t, time.Monday, finish.Weekday())
}

func TestAdvanceSkipsVacation(t *testing.T) {
	cal := testCalendar()
	monday9am := time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC)
	vacations := []entity.VacationPeriod{
		{StartDate: time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC), EndDate: time.Date(2026, 1, 5, 23, 59, 0, 0, time.UTC)},
	}
	finish := Advance(monday9am, 1, cal, vacations)
	require.Equal(t, time.Tuesday, finish.Weekday())
}

func TestRecomputePropagatesThroughPredecessor(t *testing.T) {
	cal := testCalendar()
	cache := NewCache()

	a := entity.NewTask("1", "A", "P", "A", "tester", fixedNow, fixedNow, 16, fixedNow)
	b := entity.NewTask("2", "B", "P", "B", "tester", fixedNow, fixedNow, 8, fixedNow)
	b.Predecessors = []string{"A"}

	results, err := Recompute([]*entity.Task{a, b}, cal, nil, cache)
	require.NoError(t, err)
	require.Len(t, results, 2)

	var aFinish, bStart time.Time
	for _, r := range results {
		if r.Task.Code == "A" {
			aFinish = r.Window.EarliestFinish
		}
		if r.Task.Code == "B" {
			bStart = r.Window.EarliestStart
		}
	}
	require.True(t, !bStart.Before(aFinish))
}

func TestSuccessorsOfFindsTransitiveChain(t *testing.T) {
	a := entity.NewTask("1", "A", "P", "A", "tester", fixedNow, fixedNow, 8, fixedNow)
	b := entity.NewTask("2", "B", "P", "B", "tester", fixedNow, fixedNow, 8, fixedNow)
	b.Predecessors = []string{"A"}
	c := entity.NewTask("3", "C", "P", "C", "tester", fixedNow, fixedNow, 8, fixedNow)
	c.Predecessors = []string{"B"}

	successors := SuccessorsOf([]*entity.Task{a, b, c}, "A")
	require.ElementsMatch(t, []string{"B", "C"}, successors)
}

func codesOf(tasks []*entity.Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.Code
	}
	return out
}
