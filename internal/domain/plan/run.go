package plan

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RunStatusRunning   = "running"
	RunStatusSucceeded = "succeeded"
	RunStatusFailed    = "failed"
)

// PlanRun tracks one generation run so clients can poll progress.
type PlanRun struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID       uuid.UUID  `gorm:"type:uuid;not null;index;column:user_id" json:"user_id"`
	Status       string     `gorm:"type:text;not null;index;column:status" json:"status"`
	CurrentMonth int        `gorm:"not null;column:current_month" json:"current_month"`
	Attempts     int        `gorm:"not null;column:attempts" json:"attempts"`
	Error        string     `gorm:"type:text;column:error" json:"error,omitempty"`
	StartedAt    time.Time  `gorm:"not null;column:started_at" json:"started_at"`
	FinishedAt   *time.Time `gorm:"column:finished_at" json:"finished_at,omitempty"`
	UpdatedAt    time.Time  `gorm:"not null" json:"updated_at"`
}

func (PlanRun) TableName() string { return "plan_run" }

func (r *PlanRun) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	if r.StartedAt.IsZero() {
		r.StartedAt = time.Now().UTC()
	}
	return nil
}
