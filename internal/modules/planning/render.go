package planning

import (
	"fmt"
	"strings"
)

// Render writes p in the format Extract reads. Extract(Render(p)) equals p
// whenever p.WellFormed().
func Render(p MonthPlan) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Theme: %s\n\nTasks:\n", p.Theme)
	for i, t := range p.Tasks {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%d. %s\n", t.Number, t.Content())
	}
	return b.String()
}
