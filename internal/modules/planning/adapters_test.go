package planning

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/yungbote/careercompass-backend/internal/platform/llm"
	"github.com/yungbote/careercompass-backend/internal/platform/logger"
)

func TestGeneratorPromptInputs(t *testing.T) {
	cfg := DefaultConfig()
	client := &fakeLLM{text: monthText(2)}
	gen := NewGenerator(logger.Nop(), client, &cfg)

	out, err := gen.Generate(context.Background(), GenerateRequest{
		Profile:     testProfile(),
		ResumeText:  "Five years of SQL.",
		Month:       2,
		TotalMonths: 12,
		Accepted:    []MonthEntry{{Month: 1, Plan: Extract(monthText(1))}},
		Suggestions: []string{"add a certification", "less reading"},
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if out != monthText(2) {
		t.Fatalf("unexpected output %q", out)
	}
	for _, want := range []string{
		"Current Position: Data Analyst",
		"Resume Content: Five years of SQL.",
		"Current Month: 2 of 12",
		`"theme":"Theme for month 1"`,
		"add a certification\nless reading",
	} {
		if !strings.Contains(client.lastUser, want) {
			t.Fatalf("prompt missing %q:\n%s", want, client.lastUser)
		}
	}
}

func TestGeneratorEmptyInputsUseDefaults(t *testing.T) {
	cfg := DefaultConfig()
	client := &fakeLLM{text: "x"}
	gen := NewGenerator(logger.Nop(), client, &cfg)
	if _, err := gen.Generate(context.Background(), GenerateRequest{Month: 1, TotalMonths: 12}); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !strings.Contains(client.lastUser, "Previous Plans: No previous plans") {
		t.Fatalf("missing previous plans default:\n%s", client.lastUser)
	}
	if !strings.Contains(client.lastUser, "Suggestions for Improvement: No specific suggestions.") {
		t.Fatalf("missing suggestions default:\n%s", client.lastUser)
	}
}

func TestGeneratorErrors(t *testing.T) {
	cfg := DefaultConfig()
	cause := errors.New("connection refused")
	for _, client := range []*fakeLLM{{textErr: cause}, {text: "   "}} {
		gen := NewGenerator(logger.Nop(), client, &cfg)
		_, err := gen.Generate(context.Background(), GenerateRequest{Month: 1, TotalMonths: 12})
		if !errors.Is(err, ErrGenerationFailed) {
			t.Fatalf("expected ErrGenerationFailed, got %v", err)
		}
	}
}

func TestPreviousPlansSnapshotIsOrdered(t *testing.T) {
	raw := previousPlansSnapshot([]MonthEntry{
		{Month: 1, Plan: Extract(monthText(1))},
		{Month: 2, Plan: Extract(monthText(2))},
	})
	var got []monthSnapshot
	if err := json.Unmarshal([]byte(raw), &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(got) != 2 || got[0].Month != 1 || got[1].Month != 2 {
		t.Fatalf("unexpected snapshot: %s", raw)
	}
	if len(got[0].Tasks) != 2 || got[0].Tasks[0].Number != 1 {
		t.Fatalf("unexpected tasks: %s", raw)
	}
}

func TestValidatorParsesVerdict(t *testing.T) {
	cfg := DefaultConfig()
	client := &fakeLLM{obj: map[string]any{
		"result":      false,
		"explanation": "repetitive theme",
		"suggestions": []any{"vary the theme"},
	}}
	val := NewValidator(logger.Nop(), client, &cfg)
	v, err := val.Validate(context.Background(), ValidateRequest{
		Profile:   testProfile(),
		Month:     3,
		Candidate: Extract(monthText(3)),
		Accepted: []MonthEntry{
			{Month: 1, Plan: Extract(monthText(1))},
			{Month: 2, Plan: Extract(monthText(2))},
		},
	})
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if v.Passed || v.Explanation != "repetitive theme" || len(v.Suggestions) != 1 {
		t.Fatalf("unexpected verdict %#v", v)
	}
	if client.schemaName == "" || client.schema == nil {
		t.Fatalf("validator must send a schema")
	}
	if !strings.Contains(client.lastUser, "Theme for month 1") || !strings.Contains(client.lastUser, "Theme for month 3") {
		t.Fatalf("prompt missing prior or current theme:\n%s", client.lastUser)
	}
}

func TestValidatorDefaultsOnUnusableOutput(t *testing.T) {
	cfg := DefaultConfig()
	clients := []*fakeLLM{
		{objErr: fmt.Errorf("wrapped: %w", llm.ErrMalformedOutput)},
		{objErr: llm.ErrEmptyOutput},
		{obj: map[string]any{"result": "yes"}},
	}
	for i, client := range clients {
		val := NewValidator(logger.Nop(), client, &cfg)
		v, err := val.Validate(context.Background(), ValidateRequest{Month: 1, Candidate: Extract(monthText(1))})
		if err != nil {
			t.Fatalf("case %d: unexpected error %v", i, err)
		}
		if v.Source != SourceDefault || v.Passed {
			t.Fatalf("case %d: expected default verdict, got %#v", i, v)
		}
	}
}

func TestValidatorTransportError(t *testing.T) {
	cfg := DefaultConfig()
	val := NewValidator(logger.Nop(), &fakeLLM{objErr: errors.New("503 upstream")}, &cfg)
	_, err := val.Validate(context.Background(), ValidateRequest{Month: 1, Candidate: Extract(monthText(1))})
	if !errors.Is(err, ErrValidationUnavailable) {
		t.Fatalf("expected ErrValidationUnavailable, got %v", err)
	}
}
