package prompts

// Input is a superset of all fields any prompt might need.
// Missing fields render empty strings (templates use missingkey=zero).
type Input struct {
	// User profile
	CurrentPosition    string
	FieldOfWork        string
	Age                string
	Gender             string
	MaritalStatus      string
	Education          string
	WorkExperience     string
	OneYearGoal        string
	Challenges         string
	UltimateAspiration string
	ResumeContent      string

	// Month planning
	CurrentMonth      int
	TotalMonths       int
	PreviousPlansJSON string
	Suggestions       string
	MaxTaskWords      int

	// Month check
	CurrentPlanJSON    string
	PreviousThemesJSON string
	PreviousTasksJSON  string

	// Chat
	ConversationHistoryJSON   string
	CourseRecommendationsJSON string
	WebSearchResults          string
	Query                     string
}
