package plan

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserPlanTaskOutline is one task row of a user's plan. TaskNumber is stored as
// a real number, matching the legacy table.
type UserPlanTaskOutline struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index:idx_task_outline_user_month,priority:1;column:user_id" json:"user_id"`
	Month       int       `gorm:"not null;index:idx_task_outline_user_month,priority:2;column:month" json:"month"`
	Position    int       `gorm:"not null;column:position" json:"position"`
	TaskNumber  float64   `gorm:"not null;column:task_number" json:"task_number"`
	TaskOutline string    `gorm:"type:text;not null;column:task_outline" json:"task_outline"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
}

func (UserPlanTaskOutline) TableName() string { return "user_plan_taskoutline" }

func (t *UserPlanTaskOutline) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
