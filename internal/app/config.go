package app

import (
	"strings"
	"time"

	"github.com/yungbote/careercompass-backend/internal/platform/envutil"
	"github.com/yungbote/careercompass-backend/internal/platform/logger"
)

type Config struct {
	Port        string
	ServiceName string
	Environment string
	Version     string

	// LLMProvider selects the model backend: "openai" or "gemini".
	LLMProvider string
	CORSOrigins []string
	MetricsAddr string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisChannel  string

	// UseGCS enables gs:// resume references.
	UseGCS bool

	WebSearchURL     string
	WebSearchTimeout time.Duration

	ShutdownTimeout time.Duration
}

func LoadConfig(log *logger.Logger) Config {
	cfg := Config{
		Port:             envutil.String("PORT", "8080"),
		ServiceName:      envutil.String("OTEL_SERVICE_NAME", "careercompass-backend"),
		Environment:      envutil.String("APP_ENV", "development"),
		Version:          envutil.String("APP_VERSION", ""),
		LLMProvider:      strings.ToLower(envutil.String("LLM_PROVIDER", "openai")),
		CORSOrigins:      splitList(envutil.String("CORS_ALLOWED_ORIGINS", "")),
		MetricsAddr:      envutil.String("METRICS_ADDR", ":9090"),
		RedisAddr:        envutil.String("REDIS_ADDR", ""),
		RedisPassword:    envutil.String("REDIS_PASSWORD", ""),
		RedisDB:          envutil.Int("REDIS_DB", 0),
		RedisChannel:     envutil.String("REDIS_CHANNEL", "plan_events"),
		UseGCS:           envutil.Bool("USE_GCS", false),
		WebSearchURL:     envutil.String("WEB_SEARCH_URL", ""),
		WebSearchTimeout: envutil.Duration("WEB_SEARCH_TIMEOUT", 10*time.Second),
		ShutdownTimeout:  envutil.Duration("SHUTDOWN_TIMEOUT", 30*time.Second),
	}
	log.Info("Config loaded",
		"port", cfg.Port,
		"llm_provider", cfg.LLMProvider,
		"redis", cfg.RedisAddr != "",
		"gcs", cfg.UseGCS,
		"cors_origins", len(cfg.CORSOrigins),
	)
	return cfg
}

func splitList(raw string) []string {
	var out []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
