// Package planrun ties a plan generation to a stored user: it loads the
// questionnaire answers, resolves the resume, records run progress and stores
// the finished plan.
package planrun

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	types "github.com/yungbote/careercompass-backend/internal/domain"
	"github.com/yungbote/careercompass-backend/internal/data/repos"
	"github.com/yungbote/careercompass-backend/internal/modules/planning"
	"github.com/yungbote/careercompass-backend/internal/modules/resume"
	"github.com/yungbote/careercompass-backend/internal/observability"
	"github.com/yungbote/careercompass-backend/internal/platform/logger"
	"github.com/yungbote/careercompass-backend/internal/platform/redisbus"
)

var (
	ErrUserNotFound = errors.New("user info not found")
	ErrRunNotFound  = errors.New("plan run not found")
	ErrPlanNotFound = errors.New("plan not found")
)

// Planner is the part of planning.Service this package drives.
type Planner interface {
	GeneratePlan(ctx context.Context, profile planning.UserProfile, resumeText string, obs ...planning.Observer) (planning.ThemesTable, planning.TasksTable, error)
}

type Outcome struct {
	Run    *types.PlanRun
	Themes planning.ThemesTable
	Tasks  planning.TasksTable
}

type Service interface {
	Generate(ctx context.Context, userID uuid.UUID) (*Outcome, error)
	GetRun(ctx context.Context, id uuid.UUID) (*types.PlanRun, error)
	GetPlan(ctx context.Context, userID uuid.UUID) (*repos.StoredPlan, error)
	SaveUserInfo(ctx context.Context, info *types.UserInfo) (*types.UserInfo, error)
}

type service struct {
	log      *logger.Logger
	repos    repos.Repos
	planner  Planner
	resolver resume.Resolver
	bus      redisbus.Bus
	metrics  *observability.Metrics
	now      func() time.Time
}

// NewService wires the run pipeline. bus and metrics may be nil.
func NewService(log *logger.Logger, r repos.Repos, planner Planner, resolver resume.Resolver, bus redisbus.Bus, metrics *observability.Metrics) Service {
	return &service{
		log:      log.With("service", "PlanRunService"),
		repos:    r,
		planner:  planner,
		resolver: resolver,
		bus:      bus,
		metrics:  metrics,
		now:      time.Now,
	}
}

func (s *service) Generate(ctx context.Context, userID uuid.UUID) (*Outcome, error) {
	if userID == uuid.Nil {
		return nil, fmt.Errorf("%w: user_id required", ErrInvalidUserInfo)
	}
	info, err := s.repos.UserInfo.GetByUserID(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("load user info: %w", err)
	}
	if info == nil {
		return nil, ErrUserNotFound
	}

	resumeText := ""
	if s.resolver != nil {
		resumeText, err = s.resolver.Resolve(ctx, info.Resume)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			s.log.Warn("Resume unavailable, planning without it", "user_id", userID, "error", err)
			resumeText = ""
		}
	}

	started := s.now()
	run, err := s.repos.PlanRun.Create(ctx, nil, &types.PlanRun{
		UserID:       userID,
		Status:       types.PlanRunStatusRunning,
		CurrentMonth: 1,
		StartedAt:    started.UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("create plan run: %w", err)
	}
	s.log.Info("Plan run started", "run_id", run.ID, "user_id", userID)

	obs := &runObserver{log: s.log, runs: s.repos.PlanRun, bus: s.bus, metrics: s.metrics, run: run}
	themes, tasks, err := s.planner.GeneratePlan(ctx, ProfileFromUserInfo(info), resumeText, obs)
	if err != nil {
		s.finish(ctx, run, started, err)
		return nil, err
	}

	if err := s.store(ctx, userID, themes, tasks); err != nil {
		s.finish(ctx, run, started, err)
		return nil, err
	}
	s.finish(ctx, run, started, nil)
	return &Outcome{Run: run, Themes: themes, Tasks: tasks}, nil
}

func (s *service) store(ctx context.Context, userID uuid.UUID, themes planning.ThemesTable, tasks planning.TasksTable) error {
	themeRow := &types.UserPlanTheme{UserID: userID}
	for month, theme := range themes.Months {
		themeRow.SetMonth(month, theme)
	}
	rows := make([]*types.UserPlanTaskOutline, 0, len(tasks.Rows))
	for _, r := range tasks.Rows {
		rows = append(rows, &types.UserPlanTaskOutline{
			UserID:      userID,
			Month:       r.Month,
			TaskNumber:  r.TaskNumber,
			TaskOutline: r.TaskOutline,
		})
	}
	if err := s.repos.Plan.ReplaceForUser(ctx, nil, userID, themeRow, rows); err != nil {
		return fmt.Errorf("store plan: %w", err)
	}
	return nil
}

func (s *service) finish(ctx context.Context, run *types.PlanRun, started time.Time, runErr error) {
	ctx = context.WithoutCancel(ctx)
	finished := s.now().UTC()
	run.FinishedAt = &finished
	if runErr != nil {
		run.Status = types.PlanRunStatusFailed
		run.Error = runErr.Error()
	} else {
		run.Status = types.PlanRunStatusSucceeded
		run.Error = ""
	}
	if err := s.repos.PlanRun.Update(ctx, nil, run); err != nil {
		s.log.Warn("Plan run final update failed", "run_id", run.ID, "error", err)
	}
	s.metrics.ObservePlanRun(run.Status, finished.Sub(started))
	if runErr != nil {
		s.log.Warn("Plan run failed", "run_id", run.ID, "month", run.CurrentMonth, "attempts", run.Attempts, "error", runErr)
		return
	}
	s.log.Info("Plan run succeeded", "run_id", run.ID, "attempts", run.Attempts, "duration", finished.Sub(started).String())
}

func (s *service) GetRun(ctx context.Context, id uuid.UUID) (*types.PlanRun, error) {
	run, err := s.repos.PlanRun.GetByID(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	if run == nil {
		return nil, ErrRunNotFound
	}
	return run, nil
}

func (s *service) GetPlan(ctx context.Context, userID uuid.UUID) (*repos.StoredPlan, error) {
	p, err := s.repos.Plan.GetByUserID(ctx, nil, userID)
	if err != nil {
		return nil, err
	}
	if p == nil || p.Theme == nil {
		return nil, ErrPlanNotFound
	}
	return p, nil
}

func (s *service) SaveUserInfo(ctx context.Context, info *types.UserInfo) (*types.UserInfo, error) {
	if err := ValidateUserInfo(info); err != nil {
		return nil, err
	}
	if info.UserID == uuid.Nil {
		return nil, fmt.Errorf("%w: user_id required", ErrInvalidUserInfo)
	}
	return s.repos.UserInfo.Upsert(ctx, nil, info)
}
