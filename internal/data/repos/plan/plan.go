package plan

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/careercompass-backend/internal/domain"
	"github.com/yungbote/careercompass-backend/internal/platform/logger"
)

// StoredPlan is a user's persisted plan: the themes row plus task rows ordered
// by month then position.
type StoredPlan struct {
	Theme *types.UserPlanTheme
	Tasks []*types.UserPlanTaskOutline
}

type PlanRepo interface {
	// ReplaceForUser deletes any previous plan of the user and stores the new one
	// in a single transaction.
	ReplaceForUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, theme *types.UserPlanTheme, tasks []*types.UserPlanTaskOutline) error
	GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*StoredPlan, error)
}

type planRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPlanRepo(db *gorm.DB, baseLog *logger.Logger) PlanRepo {
	return &planRepo{db: db, log: baseLog.With("repo", "PlanRepo")}
}

func (r *planRepo) ReplaceForUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, theme *types.UserPlanTheme, tasks []*types.UserPlanTaskOutline) error {
	if userID == uuid.Nil {
		return fmt.Errorf("plan requires user_id")
	}
	if theme == nil {
		return fmt.Errorf("plan requires a theme row")
	}
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).Transaction(func(txx *gorm.DB) error {
		if err := txx.Where("user_id = ?", userID).Delete(&types.UserPlanTaskOutline{}).Error; err != nil {
			return fmt.Errorf("delete task outlines: %w", err)
		}
		if err := txx.Where("user_id = ?", userID).Delete(&types.UserPlanTheme{}).Error; err != nil {
			return fmt.Errorf("delete theme row: %w", err)
		}
		theme.UserID = userID
		if err := txx.Create(theme).Error; err != nil {
			return fmt.Errorf("insert theme row: %w", err)
		}
		if len(tasks) == 0 {
			return nil
		}
		for i, t := range tasks {
			t.UserID = userID
			t.Position = i
		}
		if err := txx.CreateInBatches(tasks, 100).Error; err != nil {
			return fmt.Errorf("insert task outlines: %w", err)
		}
		r.log.Debug("Plan stored", "user_id", userID.String(), "tasks", len(tasks))
		return nil
	})
}

func (r *planRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*StoredPlan, error) {
	if userID == uuid.Nil {
		return nil, nil
	}
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var theme types.UserPlanTheme
	if err := transaction.WithContext(ctx).Where("user_id = ?", userID).First(&theme).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	var tasks []*types.UserPlanTaskOutline
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("month ASC, position ASC").
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return &StoredPlan{Theme: &theme, Tasks: tasks}, nil
}
