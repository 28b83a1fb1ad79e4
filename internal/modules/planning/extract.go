package planning

import (
	"strconv"
	"strings"
	"unicode"
)

// Extract parses generated month text (format version 1):
//
//	document   := { line }
//	theme      := "Theme:" ws* theme-text EOL        first line starting with the label
//	task-block := number "." ws* "**" title "**" ws* description
//	              "(" "Expected time frame:" ws* time-frame ")"
//
// Title, description and time frame are shortest matches and may span lines.
// The theme label may be bolded or indented; a case-sensitive "Theme:" line
// wins over a case-insensitive one, and an inline "Theme:" is the last resort.
// The marker is case-insensitive and tolerates extra whitespace. Tasks keep
// source order and their written numbers. A missing or empty theme yields
// NoThemeSentinel; text without task blocks yields no tasks.
func Extract(content string) MonthPlan {
	return MonthPlan{
		Theme: extractTheme(content),
		Tasks: extractTasks(content),
	}
}

func extractTheme(content string) string {
	lines := strings.Split(content, "\n")
	rest, ok := themeLine(lines, false)
	if !ok {
		rest, ok = themeLine(lines, true)
	}
	if !ok {
		i := strings.Index(content, themeLabel)
		if i < 0 {
			return NoThemeSentinel
		}
		rest = content[i+len(themeLabel):]
	}
	rest = strings.TrimLeftFunc(rest, isThemePad)
	if j := strings.IndexAny(rest, "\r\n"); j >= 0 {
		rest = rest[:j]
	}
	theme := strings.TrimFunc(rest, isThemePad)
	if theme == "" {
		return NoThemeSentinel
	}
	return theme
}

const themeLabel = "Theme:"

// themeLine returns the text after the label on the first line that starts
// with it, ignoring leading whitespace and bold markers.
func themeLine(lines []string, foldCase bool) (string, bool) {
	for _, line := range lines {
		l := strings.TrimLeftFunc(line, isThemePad)
		if len(l) < len(themeLabel) {
			continue
		}
		head := l[:len(themeLabel)]
		if head == themeLabel || (foldCase && strings.EqualFold(head, themeLabel)) {
			return l[len(themeLabel):], true
		}
	}
	return "", false
}

func isThemePad(r rune) bool {
	return unicode.IsSpace(r) || r == '*'
}

func extractTasks(content string) []Task {
	tasks := []Task{}
	pos := 0
	for pos < len(content) {
		t, end, ok := matchTaskAt(content, pos)
		if !ok {
			pos = skipDigits(content, pos)
			continue
		}
		tasks = append(tasks, t)
		pos = end
	}
	return tasks
}

// matchTaskAt tries to match one task block starting exactly at i and returns
// the index just past its closing parenthesis.
func matchTaskAt(s string, i int) (Task, int, bool) {
	j := i
	for j < len(s) && s[j] >= '0' && s[j] <= '9' {
		j++
	}
	if j == i || j >= len(s) || s[j] != '.' {
		return Task{}, 0, false
	}
	num, err := strconv.Atoi(s[i:j])
	if err != nil {
		return Task{}, 0, false
	}
	j = skipSpace(s, j+1)
	if !strings.HasPrefix(s[j:], "**") {
		return Task{}, 0, false
	}
	titleStart := j + 2
	k := strings.Index(s[titleStart:], "**")
	if k < 0 {
		return Task{}, 0, false
	}
	titleEnd := titleStart + k
	descStart := titleEnd + 2

	m := findTimeFrameMarker(s, descStart)
	if m < 0 {
		return Task{}, 0, false
	}
	markerEnd := matchTimeFrameMarker(s, m)
	closeIdx := strings.IndexByte(s[markerEnd:], ')')
	if closeIdx < 0 {
		return Task{}, 0, false
	}
	closeIdx += markerEnd

	return Task{
		Number:      num,
		Title:       strings.TrimSpace(s[titleStart:titleEnd]),
		Description: strings.TrimSpace(s[descStart:m]),
		TimeFrame:   strings.TrimSpace(s[markerEnd:closeIdx]),
	}, closeIdx + 1, true
}

// findTimeFrameMarker returns the index of the first "(Expected time frame:"
// at or after from, or -1.
func findTimeFrameMarker(s string, from int) int {
	for i := from; i < len(s); i++ {
		if s[i] != '(' {
			continue
		}
		if matchTimeFrameMarker(s, i) > 0 {
			return i
		}
	}
	return -1
}

var markerWords = []string{"expected", "time", "frame"}

// matchTimeFrameMarker matches "(" ws* expected ws+ time ws+ frame ws* ":" at i
// and returns the index after the colon, or -1.
func matchTimeFrameMarker(s string, i int) int {
	if i >= len(s) || s[i] != '(' {
		return -1
	}
	j := skipSpace(s, i+1)
	for w, word := range markerWords {
		if w > 0 {
			k := skipSpace(s, j)
			if k == j {
				return -1
			}
			j = k
		}
		if len(s)-j < len(word) || !strings.EqualFold(s[j:j+len(word)], word) {
			return -1
		}
		j += len(word)
	}
	j = skipSpace(s, j)
	if j >= len(s) || s[j] != ':' {
		return -1
	}
	return j + 1
}

// skipDigits moves past the digit run at i so a failed number is never
// re-read from its middle, or past one byte otherwise.
func skipDigits(s string, i int) int {
	j := i
	for j < len(s) && s[j] >= '0' && s[j] <= '9' {
		j++
	}
	if j == i {
		return i + 1
	}
	return j
}

func skipSpace(s string, i int) int {
	for i < len(s) {
		switch s[i] {
		case ' ', '\t', '\n', '\r', '\f', '\v':
			i++
		default:
			return i
		}
	}
	return i
}
