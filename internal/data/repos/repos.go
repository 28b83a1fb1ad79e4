package repos

import (
	"gorm.io/gorm"

	"github.com/yungbote/careercompass-backend/internal/data/repos/course"
	"github.com/yungbote/careercompass-backend/internal/data/repos/plan"
	"github.com/yungbote/careercompass-backend/internal/data/repos/user"
	"github.com/yungbote/careercompass-backend/internal/platform/logger"
)

type UserInfoRepo = user.UserInfoRepo
type PlanRepo = plan.PlanRepo
type PlanRunRepo = plan.PlanRunRepo
type CourseRepo = course.CourseRepo

type StoredPlan = plan.StoredPlan

type Repos struct {
	UserInfo UserInfoRepo
	Plan     PlanRepo
	PlanRun  PlanRunRepo
	Course   CourseRepo
}

func New(db *gorm.DB, log *logger.Logger) Repos {
	return Repos{
		UserInfo: user.NewUserInfoRepo(db, log),
		Plan:     plan.NewPlanRepo(db, log),
		PlanRun:  plan.NewPlanRunRepo(db, log),
		Course:   course.NewCourseRepo(db, log),
	}
}
