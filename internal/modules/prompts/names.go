package prompts

type PromptName string

const (
	// Planning
	PromptMonthPlan      PromptName = "month_plan"
	PromptMonthPlanCheck PromptName = "month_plan_check"

	// Chat
	PromptChatAnswer PromptName = "chat_answer"
)
