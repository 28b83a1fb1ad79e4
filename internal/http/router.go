package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/careercompass-backend/internal/http/handlers"
	httpMW "github.com/yungbote/careercompass-backend/internal/http/middleware"
	"github.com/yungbote/careercompass-backend/internal/observability"
	"github.com/yungbote/careercompass-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log         *logger.Logger
	Metrics     *observability.Metrics
	ServiceName string
	CORSOrigins []string

	PlanHandler   *httpH.PlanHandler
	ChatHandler   *httpH.ChatHandler
	HealthHandler *httpH.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.ServiceName != "" {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.Metrics(cfg.Metrics))
	r.Use(httpMW.CORS(cfg.CORSOrigins))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	// Legacy plan endpoint used by the onboarding flow.
	if cfg.PlanHandler != nil {
		r.POST("/generate_plan", cfg.PlanHandler.GeneratePlan)
	}

	api := r.Group("/api")
	{
		if cfg.PlanHandler != nil {
			api.POST("/plans", cfg.PlanHandler.GeneratePlan)
			api.GET("/plan-runs/:id", cfg.PlanHandler.GetRun)
			api.GET("/users/:user_id/plan", cfg.PlanHandler.GetPlan)
			api.PUT("/users/:user_id/info", cfg.PlanHandler.PutUserInfo)
		}
		if cfg.ChatHandler != nil {
			api.POST("/chat", cfg.ChatHandler.Chat)
		}
	}
	return r
}
