package app

import (
	"context"
	"fmt"

	"github.com/yungbote/careercompass-backend/internal/platform/gcp"
	"github.com/yungbote/careercompass-backend/internal/platform/gemini"
	"github.com/yungbote/careercompass-backend/internal/platform/llm"
	"github.com/yungbote/careercompass-backend/internal/platform/logger"
	"github.com/yungbote/careercompass-backend/internal/platform/openai"
	"github.com/yungbote/careercompass-backend/internal/platform/qdrant"
	"github.com/yungbote/careercompass-backend/internal/platform/redisbus"
)

var llmFactories = map[string]llm.Factory{
	"openai": openai.NewClient,
	"gemini": gemini.NewClient,
}

type Clients struct {
	LLM       llm.Client
	Bus       redisbus.Bus
	Objects   gcp.ObjectReader
	Documents gcp.TextExtractor
	Courses   qdrant.Index
}

func NewLLMClient(log *logger.Logger, provider string) (llm.Client, error) {
	c, err := llm.New(log, provider, llmFactories)
	if err != nil {
		return nil, fmt.Errorf("init llm client: %w", err)
	}
	return c, nil
}

func wireClients(ctx context.Context, log *logger.Logger, cfg Config) (Clients, error) {
	log.Info("Wiring clients...")

	ai, err := NewLLMClient(log, cfg.LLMProvider)
	if err != nil {
		return Clients{}, err
	}
	out := Clients{LLM: ai}

	// Redis
	if cfg.RedisAddr != "" {
		b, err := redisbus.New(log, redisbus.Config{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			Channel:  cfg.RedisChannel,
		})
		if err != nil {
			return Clients{}, fmt.Errorf("init redis bus: %w", err)
		}
		out.Bus = b
	}

	// Gcs
	if cfg.UseGCS {
		objects, err := gcp.NewObjectReader(log)
		if err != nil {
			out.Close()
			return Clients{}, fmt.Errorf("init storage client: %w", err)
		}
		out.Objects = objects
	}

	// Document AI is optional; without it binary resumes are rejected.
	if dcfg := gcp.DocumentConfigFromEnv(); dcfg.Enabled() {
		docs, err := gcp.NewDocument(log, dcfg)
		if err != nil {
			out.Close()
			return Clients{}, fmt.Errorf("init document client: %w", err)
		}
		out.Documents = docs
	}

	// Qdrant is optional; without it course search scans the catalog table.
	qcfg, err := qdrant.ConfigFromEnv()
	if err != nil {
		out.Close()
		return Clients{}, fmt.Errorf("qdrant config: %w", err)
	}
	if qcfg.Enabled() {
		ix, err := qdrant.New(ctx, log, qcfg)
		if err != nil {
			out.Close()
			return Clients{}, fmt.Errorf("init course index: %w", err)
		}
		out.Courses = ix
	}
	return out, nil
}

func (c *Clients) Close() {
	if c == nil {
		return
	}
	if c.Bus != nil {
		_ = c.Bus.Close()
	}
	if c.Objects != nil {
		_ = c.Objects.Close()
	}
	if c.Documents != nil {
		_ = c.Documents.Close()
	}
}
