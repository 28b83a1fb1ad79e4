package steps

const (
	SourceCourseRecommendations = "course_recommendations"
	SourceWebSearch             = "web_search"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// HistoryLimit is how many trailing history items reach the prompt.
const HistoryLimit = 10

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type CourseRef struct {
	Title      string `json:"title"`
	Rating     string `json:"rating"`
	Duration   string `json:"duration"`
	URL        string `json:"url"`
	Difficulty string `json:"difficulty"`
}

// Context is one gathered piece of evidence. Content is []CourseRef for
// course recommendations and a string for web search.
type Context struct {
	Source  string
	Content any
}

// State is threaded through the pipeline; each step appends to Contexts or
// sets FinalAnswer.
type State struct {
	Query       string
	History     []Message
	Contexts    []Context
	FinalAnswer string
}

func (s *State) context(source string) (Context, bool) {
	for _, c := range s.Contexts {
		if c.Source == source {
			return c, true
		}
	}
	return Context{}, false
}

func lastN(h []Message, n int) []Message {
	if len(h) <= n {
		return h
	}
	return h[len(h)-n:]
}
