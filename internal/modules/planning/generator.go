package planning

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/yungbote/careercompass-backend/internal/modules/prompts"
	"github.com/yungbote/careercompass-backend/internal/observability"
	"github.com/yungbote/careercompass-backend/internal/platform/llm"
	"github.com/yungbote/careercompass-backend/internal/platform/logger"
)

var ErrGenerationFailed = errors.New("plan generation failed")

const (
	noPreviousPlans = "No previous plans"
	noSuggestions   = "No specific suggestions."
)

type GenerateRequest struct {
	Profile     UserProfile
	ResumeText  string
	Month       int
	TotalMonths int
	Accepted    []MonthEntry
	Suggestions []string
}

// Generator produces raw month text. Errors wrap ErrGenerationFailed.
type Generator interface {
	Generate(ctx context.Context, req GenerateRequest) (string, error)
}

type llmGenerator struct {
	log *logger.Logger
	llm llm.Client
	cfg *Config
}

// NewGenerator returns a Generator backed by the month_plan prompt. The client
// is tuned to the configured model and temperature when it supports it.
func NewGenerator(log *logger.Logger, client llm.Client, cfg *Config) Generator {
	c := client
	if cfg.GenerationModel != "" {
		c = llm.WithModel(c, cfg.GenerationModel)
	}
	c = llm.WithTemperature(c, cfg.GenerationTemperature)
	return &llmGenerator{log: log.With("service", "PlanGenerator"), llm: c, cfg: cfg}
}

func (g *llmGenerator) Generate(ctx context.Context, req GenerateRequest) (string, error) {
	in := profileInput(req.Profile)
	in.ResumeContent = req.ResumeText
	in.CurrentMonth = req.Month
	in.TotalMonths = req.TotalMonths
	in.PreviousPlansJSON = previousPlansSnapshot(req.Accepted)
	in.Suggestions = suggestionsText(req.Suggestions)
	in.MaxTaskWords = g.cfg.MaxTaskWords

	p, err := prompts.Build(prompts.PromptMonthPlan, in)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}
	g.log.Debug("Generating month plan",
		"month", req.Month,
		"accepted_months", len(req.Accepted),
		"suggestions", len(req.Suggestions),
		"prompt_fingerprint", p.Fingerprint(),
	)
	start := time.Now()
	text, err := g.llm.GenerateText(ctx, p.System, p.User)
	observability.Current().ObserveLLM(string(prompts.PromptMonthPlan), err, time.Since(start))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrGenerationFailed, err)
	}
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: %w", ErrGenerationFailed, llm.ErrEmptyOutput)
	}
	return text, nil
}

func profileInput(p UserProfile) prompts.Input {
	return prompts.Input{
		CurrentPosition:    p.CurrentPosition,
		FieldOfWork:        p.FieldOfWork,
		Age:                p.Age,
		Gender:             p.Gender,
		MaritalStatus:      p.MaritalStatus,
		Education:          p.Education,
		WorkExperience:     p.WorkExperience,
		OneYearGoal:        p.OneYearGoal,
		Challenges:         p.Challenges,
		UltimateAspiration: p.UltimateAspiration,
	}
}

type taskSnapshot struct {
	Number  float64 `json:"number"`
	Content string  `json:"content"`
}

type monthSnapshot struct {
	Month int            `json:"month"`
	Theme string         `json:"theme"`
	Tasks []taskSnapshot `json:"tasks"`
}

func snapshotMonth(month int, p MonthPlan) monthSnapshot {
	s := monthSnapshot{Month: month, Theme: p.Theme, Tasks: make([]taskSnapshot, 0, len(p.Tasks))}
	for _, t := range p.Tasks {
		s.Tasks = append(s.Tasks, taskSnapshot{Number: float64(t.Number), Content: t.Content()})
	}
	return s
}

// previousPlansSnapshot serializes accepted months in month order.
func previousPlansSnapshot(accepted []MonthEntry) string {
	if len(accepted) == 0 {
		return noPreviousPlans
	}
	out := make([]monthSnapshot, 0, len(accepted))
	for _, e := range accepted {
		out = append(out, snapshotMonth(e.Month, e.Plan))
	}
	raw, err := json.Marshal(out)
	if err != nil {
		return noPreviousPlans
	}
	return string(raw)
}

func suggestionsText(s []string) string {
	if len(s) == 0 {
		return noSuggestions
	}
	return strings.Join(s, "\n")
}
