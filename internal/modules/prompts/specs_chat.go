package prompts

const chatAnswerSystem = `You are a helpful career trajectory assistant. Keep a friendly, helpful tone.`

const chatAnswerUser = `Use the following information to answer the user's query.

Conversation History (last 10 interactions):
{{.ConversationHistoryJSON}}

Course Recommendations:
{{.CourseRecommendationsJSON}}

Web Search Results:
{{.WebSearchResults}}

User Query: {{.Query}}

If course recommendations are available, format them as:
1. [Course Title](URL)
   - Rating: X/5
   - Duration: X hours
   - Difficulty: Easy/Medium/Hard

- If there are no course recommendations, answer from the web search results.
- Never say the information came from a web search; weave it in conversationally.
- Use the conversation history and refer back to earlier turns when relevant.
- If there is no direct answer, offer related information or suggestions for further research.`

func chatAnswerSpec() Spec {
	return Spec{
		Name:    PromptChatAnswer,
		Version: 1,
		System:  chatAnswerSystem,
		User:    chatAnswerUser,
		Validators: []Validator{
			RequireNonEmpty("query", func(in Input) string { return in.Query }),
		},
	}
}
