package user

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserInfo holds the onboarding questionnaire answers for one user. Q2..Q4 keep
// their questionnaire column names: one-year goal, current challenges and
// ultimate aspiration.
type UserInfo struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex;column:user_id" json:"user_id"`

	Age             int    `gorm:"column:age" json:"age"`
	FieldOfWork     string `gorm:"column:field_of_work;type:text" json:"field_of_work"`
	CurrentPosition string `gorm:"column:current_position;type:text" json:"current_position"`
	Gender          string `gorm:"column:gender;type:text" json:"gender"`
	MaritalStatus   string `gorm:"column:marital_status;type:text" json:"marital_status"`
	Education       string `gorm:"column:education;type:text" json:"education"`
	WorkExperience  string `gorm:"column:work_experience;type:text" json:"work_experience"`

	// Resume is a reference (gs:// or http(s) URL) or inline text.
	Resume string `gorm:"column:resume;type:text" json:"resume"`

	Q2 string `gorm:"column:q2;type:text" json:"q2"`
	Q3 string `gorm:"column:q3;type:text" json:"q3"`
	Q4 string `gorm:"column:q4;type:text" json:"q4"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (UserInfo) TableName() string { return "user_info" }

func (u *UserInfo) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
