package app

import (
	"fmt"

	"github.com/yungbote/careercompass-backend/internal/data/repos"
	"github.com/yungbote/careercompass-backend/internal/modules/chat"
	"github.com/yungbote/careercompass-backend/internal/modules/chat/steps"
	"github.com/yungbote/careercompass-backend/internal/modules/courses"
	"github.com/yungbote/careercompass-backend/internal/modules/planning"
	"github.com/yungbote/careercompass-backend/internal/modules/planrun"
	"github.com/yungbote/careercompass-backend/internal/modules/resume"
	"github.com/yungbote/careercompass-backend/internal/observability"
	"github.com/yungbote/careercompass-backend/internal/platform/logger"
)

type Services struct {
	Planner *planning.Service
	PlanRun planrun.Service
	Courses courses.Searcher
	Chat    chat.Usecases
}

func wireServices(log *logger.Logger, cfg Config, r repos.Repos, clients Clients, metrics *observability.Metrics) (Services, error) {
	log.Info("Wiring services...")

	planCfg, err := planning.ConfigFromEnv()
	if err != nil {
		return Services{}, fmt.Errorf("planner config: %w", err)
	}
	controller, err := planning.NewController(
		log,
		&planCfg,
		planning.NewGenerator(log, clients.LLM, &planCfg),
		planning.NewValidator(log, clients.LLM, &planCfg),
	)
	if err != nil {
		return Services{}, fmt.Errorf("planner controller: %w", err)
	}
	planner := planning.NewService(log, controller)

	resolver := resume.NewResolver(log, clients.Objects, clients.Documents, resume.OptionsFromEnv())
	runs := planrun.NewService(log, r, planner, resolver, clients.Bus, metrics)

	searcher := courses.NewSearcher(log, r.Course, clients.LLM, clients.Courses)
	var web steps.WebSearcher
	if cfg.WebSearchURL != "off" {
		web = steps.NewDuckDuckGo(log, cfg.WebSearchURL, cfg.WebSearchTimeout)
	}
	uc := chat.New(chat.UsecasesDeps{
		Log:     log,
		AI:      clients.LLM,
		Courses: searcher,
		Web:     web,
	})

	return Services{
		Planner: planner,
		PlanRun: runs,
		Courses: searcher,
		Chat:    uc,
	}, nil
}
