package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	types "github.com/yungbote/careercompass-backend/internal/domain"
	"github.com/yungbote/careercompass-backend/internal/modules/courses"
	"github.com/yungbote/careercompass-backend/internal/platform/logger"
)

type fakeLLM struct {
	user string
	err  error
}

func (f *fakeLLM) GenerateText(_ context.Context, _ string, user string) (string, error) {
	f.user = user
	if f.err != nil {
		return "", f.err
	}
	return "  Here is my advice.  ", nil
}

func (f *fakeLLM) GenerateJSON(context.Context, string, string, string, map[string]any) (map[string]any, error) {
	return nil, errors.New("unused")
}

func (f *fakeLLM) Embed(context.Context, []string) ([][]float32, error) {
	return nil, errors.New("unused")
}

type fakeSearcher struct {
	matches []courses.Match
	err     error
}

func (f *fakeSearcher) Match(context.Context, string, float64, int) ([]courses.Match, error) {
	return f.matches, f.err
}

type fakeWeb struct {
	text string
	err  error
}

func (f *fakeWeb) Search(context.Context, string) (string, error) { return f.text, f.err }

func TestAnswerUsesAllContexts(t *testing.T) {
	ai := &fakeLLM{}
	u := New(UsecasesDeps{
		Log: logger.Nop(),
		AI:  ai,
		Courses: &fakeSearcher{matches: []courses.Match{{
			Course: &types.Course{Title: "Python Basics", Rating: "4.7", Duration: "10", CourseURL: "https://x/py", Difficulty: "Easy"},
			Score:  0.9,
		}}},
		Web: &fakeWeb{text: "Python is a programming language."},
	})

	var history []Message
	for i := 0; i < 12; i++ {
		history = append(history, Message{Role: "user", Content: fmt.Sprintf("turn-%02d", i)})
	}
	out, err := u.Answer(context.Background(), "How do I learn python?", history)
	if err != nil {
		t.Fatalf("Answer: %v", err)
	}
	if out != "Here is my advice." {
		t.Fatalf("answer: %q", out)
	}
	for _, want := range []string{`"title":"Python Basics"`, `"url":"https://x/py"`, "Python is a programming language.", "User Query: How do I learn python?", "turn-11", "turn-02"} {
		if !strings.Contains(ai.user, want) {
			t.Fatalf("prompt missing %q:\n%s", want, ai.user)
		}
	}
	if strings.Contains(ai.user, "turn-01") {
		t.Fatalf("history not limited to the last 10 items")
	}
}

func TestAnswerDegradesWhenSearchesFail(t *testing.T) {
	ai := &fakeLLM{}
	u := New(UsecasesDeps{
		Log:     logger.Nop(),
		AI:      ai,
		Courses: &fakeSearcher{err: errors.New("db down")},
		Web:     &fakeWeb{err: errors.New("timeout")},
	})
	if _, err := u.Answer(context.Background(), "career advice", nil); err != nil {
		t.Fatalf("Answer: %v", err)
	}
	if !strings.Contains(ai.user, "Course Recommendations:\n[]") {
		t.Fatalf("expected empty recommendations:\n%s", ai.user)
	}
}

func TestAnswerErrors(t *testing.T) {
	u := New(UsecasesDeps{Log: logger.Nop(), AI: &fakeLLM{}})
	if _, err := u.Answer(context.Background(), "  ", nil); !errors.Is(err, ErrEmptyQuery) {
		t.Fatalf("expected ErrEmptyQuery, got %v", err)
	}
	u = New(UsecasesDeps{Log: logger.Nop(), AI: &fakeLLM{err: errors.New("503")}})
	if _, err := u.Answer(context.Background(), "hi", nil); err == nil {
		t.Fatalf("expected llm error")
	}
}
