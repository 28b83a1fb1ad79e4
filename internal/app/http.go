package app

import (
	apphttp "github.com/yungbote/careercompass-backend/internal/http"
	httpH "github.com/yungbote/careercompass-backend/internal/http/handlers"
	"github.com/yungbote/careercompass-backend/internal/observability"
	"github.com/yungbote/careercompass-backend/internal/platform/logger"
)

type Handlers struct {
	Health *httpH.HealthHandler
	Plan   *httpH.PlanHandler
	Chat   *httpH.ChatHandler
}

func wireHandlers(log *logger.Logger, services Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health: httpH.NewHealthHandler(),
		Plan:   httpH.NewPlanHandler(services.PlanRun),
		Chat:   httpH.NewChatHandler(services.Chat),
	}
}

func wireServer(log *logger.Logger, cfg Config, metrics *observability.Metrics, handlers Handlers) *apphttp.Server {
	return apphttp.NewServer(apphttp.RouterConfig{
		Log:           log,
		Metrics:       metrics,
		ServiceName:   cfg.ServiceName,
		CORSOrigins:   cfg.CORSOrigins,
		PlanHandler:   handlers.Plan,
		ChatHandler:   handlers.Chat,
		HealthHandler: handlers.Health,
	})
}
