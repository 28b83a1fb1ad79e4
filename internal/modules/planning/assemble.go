package planning

import (
	"sort"
	"strconv"
)

// ThemesTable is the single themes row; Months is keyed by month number.
type ThemesTable struct {
	Months map[int]string
}

// Columns returns the row keyed by column name (month_1 .. month_12).
func (t ThemesTable) Columns() map[string]string {
	out := make(map[string]string, len(t.Months))
	for m, theme := range t.Months {
		out["month_"+strconv.Itoa(m)] = theme
	}
	return out
}

type TaskRow struct {
	Month       int
	TaskNumber  float64
	TaskOutline string
}

type TasksTable struct {
	Rows []TaskRow
}

// Assemble flattens accepted months into the two output tables. Rows are
// ordered by month, then by source order within the month.
func Assemble(entries []MonthEntry) (ThemesTable, TasksTable) {
	sorted := append([]MonthEntry(nil), entries...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Month < sorted[j].Month })

	themes := ThemesTable{Months: map[int]string{}}
	tasks := TasksTable{Rows: []TaskRow{}}
	for _, e := range sorted {
		themes.Months[e.Month] = e.Plan.Theme
		for _, t := range e.Plan.Tasks {
			tasks.Rows = append(tasks.Rows, TaskRow{
				Month:       e.Month,
				TaskNumber:  float64(t.Number),
				TaskOutline: t.Content(),
			})
		}
	}
	return themes, tasks
}
