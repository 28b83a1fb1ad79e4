package plan

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/careercompass-backend/internal/data/dberr"
	types "github.com/yungbote/careercompass-backend/internal/domain"
	"github.com/yungbote/careercompass-backend/internal/platform/logger"
)

type PlanRunRepo interface {
	Create(ctx context.Context, tx *gorm.DB, run *types.PlanRun) (*types.PlanRun, error)
	// Update writes the progress columns of an existing run.
	Update(ctx context.Context, tx *gorm.DB, run *types.PlanRun) error
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.PlanRun, error)
}

type planRunRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPlanRunRepo(db *gorm.DB, baseLog *logger.Logger) PlanRunRepo {
	return &planRunRepo{db: db, log: baseLog.With("repo", "PlanRunRepo")}
}

func (r *planRunRepo) Create(ctx context.Context, tx *gorm.DB, run *types.PlanRun) (*types.PlanRun, error) {
	if run == nil || run.UserID == uuid.Nil {
		return nil, fmt.Errorf("plan run requires user_id")
	}
	if run.Status == "" {
		run.Status = types.PlanRunStatusRunning
	}
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if err := transaction.WithContext(ctx).Create(run).Error; err != nil {
		return nil, dberr.Map(err)
	}
	return run, nil
}

func (r *planRunRepo) Update(ctx context.Context, tx *gorm.DB, run *types.PlanRun) error {
	if run == nil || run.ID == uuid.Nil {
		return fmt.Errorf("plan run requires id")
	}
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	res := transaction.WithContext(ctx).
		Model(&types.PlanRun{}).
		Where("id = ?", run.ID).
		Updates(map[string]interface{}{
			"status":        run.Status,
			"current_month": run.CurrentMonth,
			"attempts":      run.Attempts,
			"error":         run.Error,
			"finished_at":   run.FinishedAt,
			"updated_at":    time.Now().UTC(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *planRunRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.PlanRun, error) {
	if id == uuid.Nil {
		return nil, nil
	}
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var row types.PlanRun
	if err := transaction.WithContext(ctx).Where("id = ?", id).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}
