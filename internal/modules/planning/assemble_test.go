package planning

import (
	"context"
	"testing"

	"github.com/yungbote/careercompass-backend/internal/platform/logger"
)

func TestAssembleEmpty(t *testing.T) {
	themes, tasks := Assemble(nil)
	if len(themes.Months) != 0 || len(themes.Columns()) != 0 {
		t.Fatalf("expected no theme columns, got %#v", themes.Months)
	}
	if len(tasks.Rows) != 0 {
		t.Fatalf("expected no task rows, got %d", len(tasks.Rows))
	}
}

func TestAssembleOrdersByMonthThenSource(t *testing.T) {
	entries := []MonthEntry{
		{Month: 2, Plan: MonthPlan{Theme: "Two", Tasks: []Task{
			{Number: 2, Title: "b", Description: "d", TimeFrame: "1 week"},
			{Number: 1, Title: "a", Description: "d", TimeFrame: "1 week"},
		}}},
		{Month: 1, Plan: MonthPlan{Theme: "One", Tasks: []Task{
			{Number: 1, Title: "x", Description: "d", TimeFrame: "2 weeks"},
		}}},
	}
	themes, tasks := Assemble(entries)
	cols := themes.Columns()
	if cols["month_1"] != "One" || cols["month_2"] != "Two" || len(cols) != 2 {
		t.Fatalf("columns: %#v", cols)
	}
	if len(tasks.Rows) != 3 {
		t.Fatalf("rows: %d", len(tasks.Rows))
	}
	want := []struct {
		month int
		num   float64
	}{{1, 1}, {2, 2}, {2, 1}}
	for i, w := range want {
		if tasks.Rows[i].Month != w.month || tasks.Rows[i].TaskNumber != w.num {
			t.Fatalf("row %d: got %#v", i, tasks.Rows[i])
		}
	}
	if tasks.Rows[0].TaskOutline != "**x**\nd\n(Expected time frame: 2 weeks)" {
		t.Fatalf("outline: %q", tasks.Rows[0].TaskOutline)
	}
}

func TestServiceGeneratePlan(t *testing.T) {
	cfg := DefaultConfig()
	c := newTestController(t, cfg, &fakeGenerator{}, &fakeValidator{})
	svc := NewService(logger.Nop(), c)

	themes, tasks, err := svc.GeneratePlan(context.Background(), testProfile(), "")
	if err != nil {
		t.Fatalf("GeneratePlan: %v", err)
	}
	if len(themes.Months) != 12 {
		t.Fatalf("themes: %d", len(themes.Months))
	}
	if len(tasks.Rows) != 24 {
		t.Fatalf("tasks: %d", len(tasks.Rows))
	}
	for _, theme := range themes.Months {
		if theme == NoThemeSentinel {
			t.Fatalf("sentinel theme reached assembly")
		}
	}
}
