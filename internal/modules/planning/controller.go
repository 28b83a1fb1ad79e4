package planning

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/yungbote/careercompass-backend/internal/observability"
	"github.com/yungbote/careercompass-backend/internal/platform/logger"
)

var ErrNonConvergence = errors.New("month plan did not converge")

// Result is a completed run: every month from 1 to Config.Months, in order.
type Result struct {
	Entries       []MonthEntry
	TotalAttempts int
}

type Controller struct {
	log       *logger.Logger
	cfg       *Config
	generator Generator
	validator Validator
	observers observers
	now       func() time.Time
}

func NewController(log *logger.Logger, cfg *Config, gen Generator, val Validator, obs ...Observer) (*Controller, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	if cfg == nil {
		return nil, fmt.Errorf("planning config required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if gen == nil || val == nil {
		return nil, fmt.Errorf("generator and validator required")
	}
	return &Controller{
		log:       log.With("service", "PlanController"),
		cfg:       cfg,
		generator: gen,
		validator: val,
		observers: observers(obs),
		now:       time.Now,
	}, nil
}

// Run drives one plan to DONE or FAILED. A partial plan is never returned:
// on any error Result is zero. Extra observers see only this run.
func (c *Controller) Run(ctx context.Context, profile UserProfile, resumeText string, extra ...Observer) (Result, error) {
	obs := append(append(observers{}, c.observers...), extra...)
	st := newPlanState()

	ctx, span := observability.Tracer().Start(ctx, "planning.Run", trace.WithAttributes(
		attribute.Int("plan.months", c.cfg.Months),
		attribute.Int("plan.max_attempts_per_month", c.cfg.MaxAttemptsPerMonth),
	))
	defer span.End()

	fail := func(err error, v *Verdict) (Result, error) {
		obs.OnTransition(ctx, Transition{Phase: PhaseFailed, Month: st.CurrentMonth, Attempt: st.Attempts, Verdict: v, Err: err, At: c.now()})
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		c.log.Warn("Plan run failed", "month", st.CurrentMonth, "attempt", st.Attempts, "error", err)
		return Result{}, err
	}

	for {
		if err := ctx.Err(); err != nil {
			return fail(err, nil)
		}
		month := st.CurrentMonth
		st.Attempts++
		st.TotalAttempts++

		verdict, candidate, err := c.attempt(ctx, st, obs, profile, resumeText)
		if err != nil {
			return fail(err, nil)
		}
		// A cancellation that raced the last call must not commit the month.
		if err := ctx.Err(); err != nil {
			return fail(err, nil)
		}
		st.record(verdict)

		if verdict.Passed {
			st.accept(month, candidate)
			if month >= c.cfg.Months {
				obs.OnTransition(ctx, Transition{Phase: PhaseDone, Month: month, Attempt: st.Attempts, Verdict: &verdict, At: c.now()})
				span.SetAttributes(attribute.Int("plan.total_attempts", st.TotalAttempts))
				c.log.Info("Plan run done", "months", len(st.Plan), "total_attempts", st.TotalAttempts)
				return Result{Entries: st.Entries(), TotalAttempts: st.TotalAttempts}, nil
			}
			obs.OnTransition(ctx, Transition{Phase: PhaseAdvance, Month: month, Attempt: st.Attempts, Verdict: &verdict, At: c.now()})
			st.advance()
			continue
		}

		st.reject(month, verdict.Suggestions)
		if st.Attempts >= c.cfg.MaxAttemptsPerMonth {
			return fail(fmt.Errorf("%w: month %d rejected %d times", ErrNonConvergence, month, st.Attempts), &verdict)
		}
		obs.OnTransition(ctx, Transition{Phase: PhaseRetry, Month: month, Attempt: st.Attempts, Verdict: &verdict, At: c.now()})
	}
}

// attempt runs PLANNING then CHECKING for the current month.
func (c *Controller) attempt(ctx context.Context, st *PlanState, obs observers, profile UserProfile, resumeText string) (Verdict, MonthPlan, error) {
	month := st.CurrentMonth
	ctx, span := observability.Tracer().Start(ctx, "planning.Month", trace.WithAttributes(
		attribute.Int("plan.month", month),
		attribute.Int("plan.attempt", st.Attempts),
	))
	defer span.End()

	obs.OnTransition(ctx, Transition{Phase: PhasePlanning, Month: month, Attempt: st.Attempts, At: c.now()})
	accepted := st.Entries()
	raw, err := c.generator.Generate(ctx, GenerateRequest{
		Profile:     profile,
		ResumeText:  resumeText,
		Month:       month,
		TotalMonths: c.cfg.Months,
		Accepted:    accepted,
		Suggestions: st.takeSuggestions(),
	})
	if err != nil {
		span.RecordError(err)
		return Verdict{}, MonthPlan{}, err
	}
	candidate := Extract(raw)
	span.SetAttributes(attribute.Int("plan.tasks", len(candidate.Tasks)), attribute.Bool("plan.has_theme", candidate.HasTheme()))

	obs.OnTransition(ctx, Transition{Phase: PhaseChecking, Month: month, Attempt: st.Attempts, At: c.now()})
	if c.cfg.RejectStructuralFailures {
		if v, rejected := precheck(candidate); rejected {
			c.log.Debug("Month failed structural check", "month", month, "attempt", st.Attempts, "explanation", v.Explanation)
			span.SetAttributes(attribute.String("plan.verdict_source", string(v.Source)))
			return v, candidate, nil
		}
	}
	v, err := c.validator.Validate(ctx, ValidateRequest{
		Profile:   profile,
		Month:     month,
		Candidate: candidate,
		Accepted:  accepted,
	})
	if err != nil {
		span.RecordError(err)
		return Verdict{}, MonthPlan{}, err
	}
	span.SetAttributes(
		attribute.Bool("plan.passed", v.Passed),
		attribute.String("plan.verdict_source", string(v.Source)),
	)
	c.log.Debug("Month checked", "month", month, "attempt", st.Attempts, "passed", v.Passed, "source", string(v.Source))
	return v, candidate, nil
}
