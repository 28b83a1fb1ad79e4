package planning

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/yungbote/careercompass-backend/internal/modules/prompts"
	"github.com/yungbote/careercompass-backend/internal/observability"
	"github.com/yungbote/careercompass-backend/internal/platform/llm"
	"github.com/yungbote/careercompass-backend/internal/platform/logger"
)

var ErrValidationUnavailable = errors.New("plan validation unavailable")

type ValidateRequest struct {
	Profile   UserProfile
	Month     int
	Candidate MonthPlan
	Accepted  []MonthEntry
}

// Validator judges a candidate month against the accepted ones. An unusable
// judgment is reported as DefaultVerdict, not as an error. Errors wrap
// ErrValidationUnavailable.
type Validator interface {
	Validate(ctx context.Context, req ValidateRequest) (Verdict, error)
}

type llmValidator struct {
	log *logger.Logger
	llm llm.Client
}

func NewValidator(log *logger.Logger, client llm.Client, cfg *Config) Validator {
	c := client
	if cfg.ValidationModel != "" {
		c = llm.WithModel(c, cfg.ValidationModel)
	}
	return &llmValidator{log: log.With("service", "PlanValidator"), llm: c}
}

func (v *llmValidator) Validate(ctx context.Context, req ValidateRequest) (Verdict, error) {
	in := profileInput(req.Profile)
	in.CurrentMonth = req.Month
	in.CurrentPlanJSON = mustJSON(snapshotMonth(req.Month, req.Candidate))

	themes := []string{}
	tasks := []string{}
	for _, e := range req.Accepted {
		if e.Month == req.Month {
			continue
		}
		themes = append(themes, e.Plan.Theme)
		for _, t := range e.Plan.Tasks {
			tasks = append(tasks, t.Content())
		}
	}
	in.PreviousThemesJSON = mustJSON(themes)
	in.PreviousTasksJSON = mustJSON(tasks)

	p, err := prompts.Build(prompts.PromptMonthPlanCheck, in)
	if err != nil {
		return Verdict{}, fmt.Errorf("%w: %v", ErrValidationUnavailable, err)
	}

	start := time.Now()
	obj, err := v.llm.GenerateJSON(ctx, p.System, p.User, p.SchemaName, p.Schema)
	observability.Current().ObserveLLM(string(prompts.PromptMonthPlanCheck), err, time.Since(start))
	if err != nil {
		if errors.Is(err, llm.ErrMalformedOutput) || errors.Is(err, llm.ErrEmptyOutput) {
			v.log.Warn("Unparseable plan check response, using default verdict", "month", req.Month, "error", err)
			return DefaultVerdict(), nil
		}
		return Verdict{}, fmt.Errorf("%w: %w", ErrValidationUnavailable, err)
	}
	verdict, err := ParseVerdict(obj)
	if err != nil {
		v.log.Warn("Invalid plan check response shape, using default verdict", "month", req.Month, "error", err)
		return DefaultVerdict(), nil
	}
	return verdict, nil
}

func mustJSON(v any) string {
	raw, err := json.Marshal(v)
	if err != nil {
		return "[]"
	}
	return string(raw)
}
