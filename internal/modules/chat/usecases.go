// Package chat answers career questions by combining catalog course matches,
// web search results and the recent conversation.
package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/yungbote/careercompass-backend/internal/modules/chat/steps"
	"github.com/yungbote/careercompass-backend/internal/modules/courses"
	"github.com/yungbote/careercompass-backend/internal/observability"
	"github.com/yungbote/careercompass-backend/internal/platform/llm"
	"github.com/yungbote/careercompass-backend/internal/platform/logger"
)

var ErrEmptyQuery = errors.New("chat query required")

type Message = steps.Message

type UsecasesDeps struct {
	Log     *logger.Logger
	AI      llm.Client
	Courses courses.Searcher
	Web     steps.WebSearcher
}

type Usecases struct {
	deps UsecasesDeps
}

func New(deps UsecasesDeps) Usecases {
	deps.Log = deps.Log.With("service", "ChatUsecases")
	return Usecases{deps: deps}
}

type step struct {
	name string
	run  func(ctx context.Context, st *steps.State) error
}

// Answer runs course_recommendations, web_search and generate_answer in order.
func (u Usecases) Answer(ctx context.Context, query string, history []Message) (string, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return "", ErrEmptyQuery
	}
	if u.deps.AI == nil {
		return "", fmt.Errorf("chat: llm client required")
	}
	st := &steps.State{Query: query, History: history}
	pipeline := []step{
		{"course_recommendations", func(ctx context.Context, st *steps.State) error {
			return steps.RecommendCourses(ctx, steps.RecommendDeps{Log: u.deps.Log, Courses: u.deps.Courses}, st)
		}},
		{"web_search", func(ctx context.Context, st *steps.State) error {
			return steps.SearchWeb(ctx, steps.SearchDeps{Log: u.deps.Log, Web: u.deps.Web}, st)
		}},
		{"generate_answer", func(ctx context.Context, st *steps.State) error {
			return steps.GenerateAnswer(ctx, steps.AnswerDeps{Log: u.deps.Log, AI: u.deps.AI}, st)
		}},
	}
	for _, s := range pipeline {
		sctx, span := observability.Tracer().Start(ctx, "chat."+s.name)
		start := time.Now()
		err := s.run(sctx, st)
		span.SetAttributes(attribute.Int("chat.contexts", len(st.Contexts)))
		span.End()
		if s.name == "generate_answer" {
			observability.Current().ObserveLLM("chat_answer", err, time.Since(start))
		}
		if err != nil {
			return "", err
		}
	}
	return st.FinalAnswer, nil
}
