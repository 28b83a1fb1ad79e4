package planning

import "sort"

type Phase int

const (
	PhasePlanning Phase = iota
	PhaseChecking
	PhaseAdvance
	PhaseRetry
	PhaseDone
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhasePlanning:
		return "planning"
	case PhaseChecking:
		return "checking"
	case PhaseAdvance:
		return "advance"
	case PhaseRetry:
		return "retry"
	case PhaseDone:
		return "done"
	case PhaseFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Terminal reports whether no transition follows p.
func (p Phase) Terminal() bool {
	return p == PhaseDone || p == PhaseFailed
}

// PlanState is the working state of one run. It is owned by a single
// Controller.Run call and never shared.
type PlanState struct {
	CurrentMonth int
	// Plan holds accepted months only.
	Plan                 map[int]MonthPlan
	PendingSuggestions   []string
	LastCheckResult      *bool
	LastCheckExplanation string
	// Attempts counts attempts at CurrentMonth, including the one in progress.
	Attempts      int
	TotalAttempts int
}

func newPlanState() *PlanState {
	return &PlanState{CurrentMonth: 1, Plan: map[int]MonthPlan{}}
}

// takeSuggestions returns the pending suggestions and clears them.
func (s *PlanState) takeSuggestions() []string {
	out := s.PendingSuggestions
	s.PendingSuggestions = nil
	return out
}

func (s *PlanState) record(v Verdict) {
	passed := v.Passed
	s.LastCheckResult = &passed
	s.LastCheckExplanation = v.Explanation
}

func (s *PlanState) accept(month int, p MonthPlan) {
	s.Plan[month] = p
}

func (s *PlanState) reject(month int, suggestions []string) {
	delete(s.Plan, month)
	s.PendingSuggestions = append([]string(nil), suggestions...)
}

func (s *PlanState) advance() {
	s.CurrentMonth++
	s.Attempts = 0
	s.PendingSuggestions = nil
}

// Entries returns the accepted months in month order.
func (s *PlanState) Entries() []MonthEntry {
	months := make([]int, 0, len(s.Plan))
	for m := range s.Plan {
		months = append(months, m)
	}
	sort.Ints(months)
	out := make([]MonthEntry, 0, len(months))
	for _, m := range months {
		out = append(out, MonthEntry{Month: m, Plan: s.Plan[m]})
	}
	return out
}
