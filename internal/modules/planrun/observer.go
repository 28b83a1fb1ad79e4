package planrun

import (
	"context"
	"time"

	types "github.com/yungbote/careercompass-backend/internal/domain"
	"github.com/yungbote/careercompass-backend/internal/data/repos"
	"github.com/yungbote/careercompass-backend/internal/modules/planning"
	"github.com/yungbote/careercompass-backend/internal/observability"
	"github.com/yungbote/careercompass-backend/internal/platform/logger"
	"github.com/yungbote/careercompass-backend/internal/platform/redisbus"
)

// runObserver mirrors controller transitions into the run record, the
// progress bus and metrics. Failures here are logged and never stop a run.
type runObserver struct {
	log     *logger.Logger
	runs    repos.PlanRunRepo
	bus     redisbus.Bus
	metrics *observability.Metrics
	run     *types.PlanRun
}

func (o *runObserver) OnTransition(ctx context.Context, t planning.Transition) {
	// Progress writes must land even when the caller has gone away.
	ctx = context.WithoutCancel(ctx)

	switch t.Phase {
	case planning.PhasePlanning:
		o.run.CurrentMonth = t.Month
		o.run.Attempts++
		if err := o.runs.Update(ctx, nil, o.run); err != nil {
			o.log.Warn("Plan run progress update failed", "run_id", o.run.ID, "error", err)
		}
	case planning.PhaseAdvance, planning.PhaseDone:
		o.metrics.IncPlanAttempt("accepted")
	case planning.PhaseRetry:
		o.metrics.IncPlanAttempt(rejectionOutcome(t.Verdict))
	case planning.PhaseFailed:
		if t.Verdict != nil {
			o.metrics.IncPlanAttempt(rejectionOutcome(t.Verdict))
		}
	}

	if o.bus == nil || t.Phase == planning.PhaseChecking {
		return
	}
	ev := redisbus.Event{
		RunID:   o.run.ID.String(),
		UserID:  o.run.UserID.String(),
		Event:   t.Phase.String(),
		Month:   t.Month,
		Attempt: t.Attempt,
		At:      t.At.UTC(),
	}
	if t.Verdict != nil {
		passed := t.Verdict.Passed
		ev.Passed = &passed
		ev.Explanation = t.Verdict.Explanation
	}
	if t.Err != nil && ev.Explanation == "" {
		ev.Explanation = t.Err.Error()
	}
	if ev.At.IsZero() {
		ev.At = time.Now().UTC()
	}
	pubCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := o.bus.Publish(pubCtx, ev); err != nil {
		o.log.Warn("Plan event publish failed", "run_id", o.run.ID, "event", ev.Event, "error", err)
	}
}

func rejectionOutcome(v *planning.Verdict) string {
	if v != nil && v.Source == planning.SourcePrecheck {
		return "precheck_rejected"
	}
	return "rejected"
}
