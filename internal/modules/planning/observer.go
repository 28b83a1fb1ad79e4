package planning

import (
	"context"
	"time"
)

// Transition describes one state change of a run.
type Transition struct {
	Phase   Phase
	Month   int
	Attempt int
	// Verdict is set on Advance, Retry, Done and on Failed after a rejection.
	Verdict *Verdict
	// Err is set on Failed.
	Err error
	At  time.Time
}

// Observer is notified synchronously of each transition. Implementations must
// not block for long and must not fail the run.
type Observer interface {
	OnTransition(ctx context.Context, t Transition)
}

type ObserverFunc func(ctx context.Context, t Transition)

func (f ObserverFunc) OnTransition(ctx context.Context, t Transition) { f(ctx, t) }

type observers []Observer

func (o observers) OnTransition(ctx context.Context, t Transition) {
	for _, ob := range o {
		if ob != nil {
			ob.OnTransition(ctx, t)
		}
	}
}
