package domain

import (
	"github.com/yungbote/careercompass-backend/internal/domain/course"
	"github.com/yungbote/careercompass-backend/internal/domain/plan"
	"github.com/yungbote/careercompass-backend/internal/domain/user"
)

type (
	UserInfo            = user.UserInfo
	UserPlanTheme       = plan.UserPlanTheme
	UserPlanTaskOutline = plan.UserPlanTaskOutline
	PlanRun             = plan.PlanRun
	Course              = course.Course
)

const (
	PlanRunStatusRunning   = plan.RunStatusRunning
	PlanRunStatusSucceeded = plan.RunStatusSucceeded
	PlanRunStatusFailed    = plan.RunStatusFailed
)

// Models lists every table for AutoMigrate.
func Models() []any {
	return []any{
		&UserInfo{},
		&UserPlanTheme{},
		&UserPlanTaskOutline{},
		&PlanRun{},
		&Course{},
	}
}
