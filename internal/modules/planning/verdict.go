package planning

import (
	"fmt"
	"strings"
)

type VerdictSource string

const (
	// SourceValidator marks a verdict parsed from the validator's response.
	SourceValidator VerdictSource = "validator"
	// SourceDefault marks the conservative verdict used when the response was unusable.
	SourceDefault VerdictSource = "default"
	// SourcePrecheck marks a local rejection that never reached the validator.
	SourcePrecheck VerdictSource = "precheck"
)

const (
	defaultExplanation = "Unable to parse AI response. Plan needs revision."
	defaultSuggestion  = "Please generate a new plan addressing repetition and alignment issues."
	noExplanation      = "No explanation provided."
)

type Verdict struct {
	Passed      bool
	Explanation string
	Suggestions []string
	Source      VerdictSource
}

// DefaultVerdict is the failing verdict substituted for an unparseable judgment.
func DefaultVerdict() Verdict {
	return Verdict{
		Passed:      false,
		Explanation: defaultExplanation,
		Suggestions: []string{defaultSuggestion},
		Source:      SourceDefault,
	}
}

// ParseVerdict reads {result, explanation, suggestions}. result is required and
// must be a boolean; explanation and suggestions are optional.
func ParseVerdict(obj map[string]any) (Verdict, error) {
	if obj == nil {
		return Verdict{}, fmt.Errorf("verdict: empty payload")
	}
	rawResult, ok := obj["result"]
	if !ok {
		return Verdict{}, fmt.Errorf("verdict: missing result")
	}
	passed, ok := rawResult.(bool)
	if !ok {
		return Verdict{}, fmt.Errorf("verdict: result is %T, want bool", rawResult)
	}

	v := Verdict{Passed: passed, Explanation: noExplanation, Source: SourceValidator}
	if rawExp, ok := obj["explanation"]; ok && rawExp != nil {
		s, ok := rawExp.(string)
		if !ok {
			return Verdict{}, fmt.Errorf("verdict: explanation is %T, want string", rawExp)
		}
		if strings.TrimSpace(s) != "" {
			v.Explanation = s
		}
	}
	if rawSug, ok := obj["suggestions"]; ok && rawSug != nil {
		arr, ok := rawSug.([]any)
		if !ok {
			return Verdict{}, fmt.Errorf("verdict: suggestions is %T, want array", rawSug)
		}
		for i, item := range arr {
			s, ok := item.(string)
			if !ok {
				return Verdict{}, fmt.Errorf("verdict: suggestions[%d] is %T, want string", i, item)
			}
			if s = strings.TrimSpace(s); s != "" {
				v.Suggestions = append(v.Suggestions, s)
			}
		}
	}
	return v, nil
}

// precheck rejects a candidate that is missing its theme or its tasks.
func precheck(p MonthPlan) (Verdict, bool) {
	var problems, suggestions []string
	if !p.HasTheme() {
		problems = append(problems, "the month has no theme")
		suggestions = append(suggestions, "Start the plan with a line 'Theme: <theme>' naming a theme for the month.")
	}
	if len(p.Tasks) == 0 {
		problems = append(problems, "no numbered tasks with an expected time frame were found")
		suggestions = append(suggestions, "List 3-5 numbered tasks formatted as '1. **Title**', a description, and '(Expected time frame: X weeks)'.")
	}
	if len(problems) == 0 {
		return Verdict{}, false
	}
	return Verdict{
		Passed:      false,
		Explanation: "Structural check failed: " + strings.Join(problems, "; ") + ".",
		Suggestions: suggestions,
		Source:      SourcePrecheck,
	}, true
}
