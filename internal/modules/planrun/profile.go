package planrun

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	types "github.com/yungbote/careercompass-backend/internal/domain"
	"github.com/yungbote/careercompass-backend/internal/modules/planning"
)

var ErrInvalidUserInfo = errors.New("invalid user info")

// ValidateUserInfo enforces the questionnaire's required answers.
func ValidateUserInfo(info *types.UserInfo) error {
	if info == nil {
		return fmt.Errorf("%w: missing body", ErrInvalidUserInfo)
	}
	var missing []string
	if info.Age <= 0 || info.Age > 120 {
		missing = append(missing, "age")
	}
	required := []struct {
		name  string
		value string
	}{
		{"field_of_work", info.FieldOfWork},
		{"current_position", info.CurrentPosition},
		{"gender", info.Gender},
		{"marital_status", info.MaritalStatus},
		{"education", info.Education},
		{"work_experience", info.WorkExperience},
		{"q2", info.Q2},
		{"q3", info.Q3},
		{"q4", info.Q4},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing or invalid %s", ErrInvalidUserInfo, strings.Join(missing, ", "))
	}
	return nil
}

// ProfileFromUserInfo maps stored answers onto the planner's profile.
func ProfileFromUserInfo(info *types.UserInfo) planning.UserProfile {
	age := ""
	if info.Age > 0 {
		age = strconv.Itoa(info.Age)
	}
	return planning.UserProfile{
		CurrentPosition:    info.CurrentPosition,
		FieldOfWork:        info.FieldOfWork,
		Age:                age,
		Gender:             info.Gender,
		MaritalStatus:      info.MaritalStatus,
		Education:          info.Education,
		WorkExperience:     info.WorkExperience,
		OneYearGoal:        info.Q2,
		Challenges:         info.Q3,
		UltimateAspiration: info.Q4,
	}
}
