package planning

import (
	"context"
	"errors"
	"fmt"

	"github.com/yungbote/careercompass-backend/internal/platform/logger"
)

var ErrInvalidPlan = errors.New("generated plan is invalid")

type Service struct {
	log        *logger.Logger
	controller *Controller
}

func NewService(log *logger.Logger, controller *Controller) *Service {
	return &Service{log: log.With("service", "PlanService"), controller: controller}
}

// GeneratePlan runs the controller and assembles its result. A plan carrying
// the no-theme sentinel is rejected rather than stored.
func (s *Service) GeneratePlan(ctx context.Context, profile UserProfile, resumeText string, obs ...Observer) (ThemesTable, TasksTable, error) {
	res, err := s.controller.Run(ctx, profile, resumeText, obs...)
	if err != nil {
		return ThemesTable{}, TasksTable{}, err
	}
	for _, e := range res.Entries {
		if !e.Plan.HasTheme() {
			return ThemesTable{}, TasksTable{}, fmt.Errorf("%w: month %d has no theme", ErrInvalidPlan, e.Month)
		}
	}
	themes, tasks := Assemble(res.Entries)
	s.log.Info("Plan generated", "months", len(themes.Months), "tasks", len(tasks.Rows), "total_attempts", res.TotalAttempts)
	return themes, tasks, nil
}
