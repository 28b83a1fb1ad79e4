// Package planning generates a month-by-month career plan. A Controller drives
// a generate → extract → validate loop per month, retrying rejected months up
// to a configured limit, and the accepted months are assembled into a themes
// row and a task table.
package planning

import (
	"fmt"
	"strings"
)

// NoThemeSentinel is what Extract reports when the text carries no theme.
// It never survives into an accepted month.
const NoThemeSentinel = "No theme specified"

// UserProfile is the read-only input of a run.
type UserProfile struct {
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
}

type Task struct {
	// Number is the 1-based number as written in the source text.
	Number      int
	Title       string
	Description string
	TimeFrame   string
}

// Content renders the task the way it is stored in the task table.
func (t Task) Content() string {
	return fmt.Sprintf("**%s**\n%s\n(Expected time frame: %s)", t.Title, t.Description, t.TimeFrame)
}

type MonthPlan struct {
	Theme string
	Tasks []Task
}

// HasTheme reports whether the plan carries a real theme.
func (p MonthPlan) HasTheme() bool {
	t := strings.TrimSpace(p.Theme)
	return t != "" && t != NoThemeSentinel
}

// WellFormed reports whether p can be rendered and extracted back unchanged.
func (p MonthPlan) WellFormed() bool {
	if !p.HasTheme() || p.Theme != strings.TrimSpace(p.Theme) || strings.ContainsAny(p.Theme, "\r\n") {
		return false
	}
	if strings.HasPrefix(p.Theme, "*") || strings.HasSuffix(p.Theme, "*") {
		return false
	}
	// A bold span in the theme line can open a task block.
	if strings.Contains(p.Theme, "**") {
		return false
	}
	for _, t := range p.Tasks {
		if t.Number < 0 {
			return false
		}
		if t.Title != strings.TrimSpace(t.Title) || strings.Contains(t.Title, "**") || strings.HasSuffix(t.Title, "*") {
			return false
		}
		if t.Description != strings.TrimSpace(t.Description) || findTimeFrameMarker(t.Description, 0) >= 0 {
			return false
		}
		if t.TimeFrame != strings.TrimSpace(t.TimeFrame) || strings.Contains(t.TimeFrame, ")") {
			return false
		}
	}
	return true
}

// MonthEntry is one accepted month.
type MonthEntry struct {
	Month int
	Plan  MonthPlan
}
