package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yungbote/careercompass-backend/internal/data/dberr"
	types "github.com/yungbote/careercompass-backend/internal/domain"
	"github.com/yungbote/careercompass-backend/internal/platform/logger"
)

type UserInfoRepo interface {
	Create(ctx context.Context, tx *gorm.DB, info *types.UserInfo) (*types.UserInfo, error)
	Upsert(ctx context.Context, tx *gorm.DB, info *types.UserInfo) (*types.UserInfo, error)
	GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.UserInfo, error)
}

type userInfoRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserInfoRepo(db *gorm.DB, baseLog *logger.Logger) UserInfoRepo {
	return &userInfoRepo{db: db, log: baseLog.With("repo", "UserInfoRepo")}
}

func (r *userInfoRepo) Create(ctx context.Context, tx *gorm.DB, info *types.UserInfo) (*types.UserInfo, error) {
	if info == nil || info.UserID == uuid.Nil {
		return nil, fmt.Errorf("user_info requires user_id")
	}
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if err := transaction.WithContext(ctx).Create(info).Error; err != nil {
		return nil, dberr.Map(err)
	}
	return info, nil
}

var upsertColumns = []string{
	"age", "field_of_work", "current_position", "gender", "marital_status",
	"education", "work_experience", "resume", "q2", "q3", "q4", "updated_at",
}

func (r *userInfoRepo) Upsert(ctx context.Context, tx *gorm.DB, info *types.UserInfo) (*types.UserInfo, error) {
	if info == nil || info.UserID == uuid.Nil {
		return nil, fmt.Errorf("user_info requires user_id")
	}
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	err := transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns(upsertColumns),
		}).
		Create(info).Error
	if err != nil {
		return nil, err
	}
	// The insert may have turned into an update; reload to get the stored id.
	return r.GetByUserID(ctx, transaction, info.UserID)
}

func (r *userInfoRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.UserInfo, error) {
	if userID == uuid.Nil {
		return nil, nil
	}
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var row types.UserInfo
	err := transaction.WithContext(ctx).Where("user_id = ?", userID).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}
