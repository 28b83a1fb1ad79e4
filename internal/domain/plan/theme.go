package plan

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserPlanTheme is the single themes row of a user's twelve-month plan.
type UserPlanTheme struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex;column:user_id" json:"user_id"`

	Month1  string `gorm:"column:month_1;type:text" json:"month_1"`
	Month2  string `gorm:"column:month_2;type:text" json:"month_2"`
	Month3  string `gorm:"column:month_3;type:text" json:"month_3"`
	Month4  string `gorm:"column:month_4;type:text" json:"month_4"`
	Month5  string `gorm:"column:month_5;type:text" json:"month_5"`
	Month6  string `gorm:"column:month_6;type:text" json:"month_6"`
	Month7  string `gorm:"column:month_7;type:text" json:"month_7"`
	Month8  string `gorm:"column:month_8;type:text" json:"month_8"`
	Month9  string `gorm:"column:month_9;type:text" json:"month_9"`
	Month10 string `gorm:"column:month_10;type:text" json:"month_10"`
	Month11 string `gorm:"column:month_11;type:text" json:"month_11"`
	Month12 string `gorm:"column:month_12;type:text" json:"month_12"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (UserPlanTheme) TableName() string { return "user_plan_theme" }

func (t *UserPlanTheme) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

func (t *UserPlanTheme) slots() []*string {
	return []*string{
		&t.Month1, &t.Month2, &t.Month3, &t.Month4, &t.Month5, &t.Month6,
		&t.Month7, &t.Month8, &t.Month9, &t.Month10, &t.Month11, &t.Month12,
	}
}

// SetMonth stores the theme for a 1-based month; out-of-range months are ignored.
func (t *UserPlanTheme) SetMonth(month int, theme string) {
	s := t.slots()
	if month < 1 || month > len(s) {
		return
	}
	*s[month-1] = theme
}

// Month returns the theme for a 1-based month, or "" when absent.
func (t *UserPlanTheme) Month(month int) string {
	s := t.slots()
	if month < 1 || month > len(s) {
		return ""
	}
	return *s[month-1]
}
