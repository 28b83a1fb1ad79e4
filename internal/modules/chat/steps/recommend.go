package steps

import (
	"context"

	"github.com/yungbote/careercompass-backend/internal/modules/courses"
	"github.com/yungbote/careercompass-backend/internal/platform/logger"
)

type RecommendDeps struct {
	Log       *logger.Logger
	Courses   courses.Searcher
	Threshold float64
	Count     int
}

// RecommendCourses adds the catalog matches for the query. A search failure
// leaves an empty recommendation list.
func RecommendCourses(ctx context.Context, deps RecommendDeps, st *State) error {
	refs := []CourseRef{}
	if deps.Courses != nil {
		threshold, count := deps.Threshold, deps.Count
		if threshold <= 0 {
			threshold = courses.DefaultMatchThreshold
		}
		if count <= 0 {
			count = courses.DefaultMatchCount
		}
		matches, err := deps.Courses.Match(ctx, st.Query, threshold, count)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			deps.Log.Warn("Course recommendation failed", "error", err)
		}
		for _, m := range matches {
			refs = append(refs, CourseRef{
				Title:      m.Course.Title,
				Rating:     m.Course.Rating,
				Duration:   m.Course.Duration,
				URL:        m.Course.CourseURL,
				Difficulty: m.Course.Difficulty,
			})
		}
	}
	st.Contexts = append(st.Contexts, Context{Source: SourceCourseRecommendations, Content: refs})
	return nil
}
