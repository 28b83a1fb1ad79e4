package plan

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/careercompass-backend/internal/data/repos/testutil"
	types "github.com/yungbote/careercompass-backend/internal/domain"
)

func TestPlanRepoReplaceForUser(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewPlanRepo(db, testutil.Logger(t))
	ctx := context.Background()
	userID := uuid.New()

	first := &types.UserPlanTheme{}
	first.SetMonth(1, "Old theme")
	if err := repo.ReplaceForUser(ctx, tx, userID, first, []*types.UserPlanTaskOutline{
		{Month: 1, TaskNumber: 1, TaskOutline: "old"},
	}); err != nil {
		t.Fatalf("ReplaceForUser first: %v", err)
	}

	theme := &types.UserPlanTheme{}
	theme.SetMonth(1, "Foundations")
	theme.SetMonth(2, "Depth")
	tasks := []*types.UserPlanTaskOutline{
		{Month: 1, TaskNumber: 2, TaskOutline: "b"},
		{Month: 1, TaskNumber: 1, TaskOutline: "a"},
		{Month: 2, TaskNumber: 1, TaskOutline: "c"},
	}
	if err := repo.ReplaceForUser(ctx, tx, userID, theme, tasks); err != nil {
		t.Fatalf("ReplaceForUser second: %v", err)
	}

	got, err := repo.GetByUserID(ctx, tx, userID)
	if err != nil {
		t.Fatalf("GetByUserID: %v", err)
	}
	if got == nil || got.Theme.Month1 != "Foundations" || got.Theme.Month2 != "Depth" {
		t.Fatalf("GetByUserID: unexpected theme %+v", got)
	}
	if len(got.Tasks) != 3 {
		t.Fatalf("GetByUserID: expected 3 tasks, got %d", len(got.Tasks))
	}
	// Source order within a month is preserved even when numbers are out of order.
	if got.Tasks[0].TaskOutline != "b" || got.Tasks[1].TaskOutline != "a" || got.Tasks[2].Month != 2 {
		t.Fatalf("GetByUserID: unexpected task order %+v %+v %+v", got.Tasks[0], got.Tasks[1], got.Tasks[2])
	}

	missing, err := repo.GetByUserID(ctx, tx, uuid.New())
	if err != nil || missing != nil {
		t.Fatalf("GetByUserID missing: got=%v err=%v", missing, err)
	}
}

func TestPlanRunRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewPlanRunRepo(db, testutil.Logger(t))
	ctx := context.Background()

	run, err := repo.Create(ctx, tx, &types.PlanRun{UserID: uuid.New(), CurrentMonth: 1})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if run.ID == uuid.Nil || run.Status != types.PlanRunStatusRunning || run.StartedAt.IsZero() {
		t.Fatalf("Create: unexpected defaults %+v", run)
	}

	done := time.Now().UTC()
	run.Status = types.PlanRunStatusSucceeded
	run.CurrentMonth = 12
	run.Attempts = 14
	run.FinishedAt = &done
	if err := repo.Update(ctx, tx, run); err != nil {
		t.Fatalf("Update: %v", err)
	}

	got, err := repo.GetByID(ctx, tx, run.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Status != types.PlanRunStatusSucceeded || got.CurrentMonth != 12 || got.Attempts != 14 || got.FinishedAt == nil {
		t.Fatalf("GetByID: unexpected row %+v", got)
	}

	if err := repo.Update(ctx, tx, &types.PlanRun{ID: uuid.New()}); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("Update missing: expected ErrRecordNotFound, got %v", err)
	}
}
