package planning

import (
	"context"
	"fmt"
	"sync"
)

type fakeGenerator struct {
	mu    sync.Mutex
	calls []GenerateRequest
	// respond returns the text for a call; nil means monthText(req.Month).
	respond func(req GenerateRequest) (string, error)
}

func (g *fakeGenerator) Generate(_ context.Context, req GenerateRequest) (string, error) {
	g.mu.Lock()
	g.calls = append(g.calls, req)
	g.mu.Unlock()
	if g.respond != nil {
		return g.respond(req)
	}
	return monthText(req.Month), nil
}

type fakeValidator struct {
	mu    sync.Mutex
	calls []ValidateRequest
	// judge returns the verdict for a call; nil means pass.
	judge func(req ValidateRequest, call int) (Verdict, error)
}

func (v *fakeValidator) Validate(_ context.Context, req ValidateRequest) (Verdict, error) {
	v.mu.Lock()
	v.calls = append(v.calls, req)
	n := len(v.calls)
	v.mu.Unlock()
	if v.judge != nil {
		return v.judge(req, n)
	}
	return Verdict{Passed: true, Explanation: "ok", Source: SourceValidator}, nil
}

type recordingObserver struct {
	mu          sync.Mutex
	transitions []Transition
}

func (r *recordingObserver) OnTransition(_ context.Context, t Transition) {
	r.mu.Lock()
	r.transitions = append(r.transitions, t)
	r.mu.Unlock()
}

func (r *recordingObserver) phases() []Phase {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Phase, 0, len(r.transitions))
	for _, t := range r.transitions {
		out = append(out, t.Phase)
	}
	return out
}

type fakeLLM struct {
	text    string
	textErr error
	obj     map[string]any
	objErr  error

	lastSystem string
	lastUser   string
	schemaName string
	schema     map[string]any
}

func (f *fakeLLM) GenerateText(_ context.Context, system, user string) (string, error) {
	f.lastSystem, f.lastUser = system, user
	return f.text, f.textErr
}

func (f *fakeLLM) GenerateJSON(_ context.Context, system, user, schemaName string, schema map[string]any) (map[string]any, error) {
	f.lastSystem, f.lastUser = system, user
	f.schemaName, f.schema = schemaName, schema
	return f.obj, f.objErr
}

func (f *fakeLLM) Embed(_ context.Context, inputs []string) ([][]float32, error) {
	return nil, fmt.Errorf("not implemented")
}

func monthText(month int) string {
	return Render(MonthPlan{
		Theme: fmt.Sprintf("Theme for month %d", month),
		Tasks: []Task{
			{Number: 1, Title: fmt.Sprintf("Study %d", month), Description: "Read two chapters.", TimeFrame: "2 weeks"},
			{Number: 2, Title: fmt.Sprintf("Build %d", month), Description: "Ship a small project.", TimeFrame: "1 week"},
		},
	})
}

func testProfile() UserProfile {
	return UserProfile{
		CurrentPosition:    "Data Analyst",
		FieldOfWork:        "Analytics",
		Age:                "29",
		OneYearGoal:        "Become a data scientist",
		Challenges:         "Limited time",
		UltimateAspiration: "Lead a data team",
	}
}
