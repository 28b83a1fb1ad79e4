package steps

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/yungbote/careercompass-backend/internal/modules/prompts"
	"github.com/yungbote/careercompass-backend/internal/platform/llm"
	"github.com/yungbote/careercompass-backend/internal/platform/logger"
)

type AnswerDeps struct {
	Log *logger.Logger
	AI  llm.Client
}

// GenerateAnswer writes the final reply from the gathered contexts.
func GenerateAnswer(ctx context.Context, deps AnswerDeps, st *State) error {
	history, err := json.Marshal(lastN(st.History, HistoryLimit))
	if err != nil {
		return err
	}
	var recs any = []CourseRef{}
	if c, ok := st.context(SourceCourseRecommendations); ok && c.Content != nil {
		recs = c.Content
	}
	recsJSON, err := json.Marshal(recs)
	if err != nil {
		return err
	}
	web := ""
	if c, ok := st.context(SourceWebSearch); ok {
		web, _ = c.Content.(string)
	}

	p, err := prompts.Build(prompts.PromptChatAnswer, prompts.Input{
		ConversationHistoryJSON:   string(history),
		CourseRecommendationsJSON: string(recsJSON),
		WebSearchResults:          web,
		Query:                     st.Query,
	})
	if err != nil {
		return err
	}
	out, err := deps.AI.GenerateText(ctx, p.System, p.User)
	if err != nil {
		return fmt.Errorf("chat answer: %w", err)
	}
	st.FinalAnswer = strings.TrimSpace(out)
	deps.Log.Debug("Chat answer generated", "chars", len(st.FinalAnswer), "prompt_fingerprint", p.Fingerprint())
	return nil
}
