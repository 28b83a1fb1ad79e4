package planning

import (
	"reflect"
	"strings"
	"testing"
)

func TestExtractExampleScenario(t *testing.T) {
	text := "Theme: Foundations\n\nTasks:\n1. **Learn X**\nDo Y.\n(Expected time frame: 2 weeks)\n2. **Build Z**\nDo W.\n(Expected time frame: 1 week)"
	p := Extract(text)
	if p.Theme != "Foundations" {
		t.Fatalf("theme: got %q", p.Theme)
	}
	want := []Task{
		{Number: 1, Title: "Learn X", Description: "Do Y.", TimeFrame: "2 weeks"},
		{Number: 2, Title: "Build Z", Description: "Do W.", TimeFrame: "1 week"},
	}
	if !reflect.DeepEqual(p.Tasks, want) {
		t.Fatalf("tasks: got %#v", p.Tasks)
	}
	if !strings.Contains(p.Tasks[0].Content(), "(Expected time frame: 2 weeks)") {
		t.Fatalf("content missing time frame: %q", p.Tasks[0].Content())
	}
	if !strings.Contains(p.Tasks[1].Content(), "(Expected time frame: 1 week)") {
		t.Fatalf("content missing time frame: %q", p.Tasks[1].Content())
	}
}

func TestExtractMissingTheme(t *testing.T) {
	p := Extract("Tasks:\n1. **Learn X**\nDo Y.\n(Expected time frame: 2 weeks)")
	if p.Theme != NoThemeSentinel {
		t.Fatalf("theme: got %q", p.Theme)
	}
	if p.HasTheme() {
		t.Fatalf("sentinel theme must not count as a theme")
	}
	if len(p.Tasks) != 1 {
		t.Fatalf("tasks: got %d", len(p.Tasks))
	}
}

func TestExtractThemeVariants(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "Theme: Networking\n", "Networking"},
		{"bold", "**Theme:** Networking\n", "Networking"},
		{"lowercase", "theme: Networking", "Networking"},
		{"trailing space", "Theme:   Networking   \nTasks:", "Networking"},
		{"empty", "Theme:", NoThemeSentinel},
		{"first wins", "Theme: One\nTheme: Two", "One"},
		{"none", "Just some text", NoThemeSentinel},
		{"prose before label", "Here is a plan whose overall theme: growth mindset.\n\nTheme: Networking\nTasks:", "Networking"},
		{"exact case preferred", "theme: lower\nTheme: Upper", "Upper"},
		{"indented bold", "   **Theme:** Networking **\n", "Networking"},
		{"inline fallback", "Month 1 Theme: Networking\n", "Networking"},
		{"rest of line only", "Theme:\nNetworking", NoThemeSentinel},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Extract(tc.in).Theme; got != tc.want {
				t.Fatalf("got %q want %q", got, tc.want)
			}
		})
	}
}

func TestExtractNoTasks(t *testing.T) {
	p := Extract("Theme: Something\n\nNo tasks here.")
	if p.Tasks == nil || len(p.Tasks) != 0 {
		t.Fatalf("expected empty non-nil tasks, got %#v", p.Tasks)
	}
}

func TestExtractKeepsSourceOrderAndNumbers(t *testing.T) {
	text := "Theme: T\n" +
		"3. **C**\nthird\n(Expected time frame: 1 week)\n" +
		"1. **A**\nfirst\n(Expected time frame: 2 weeks)\n" +
		"1. **A again**\nduplicate number\n(Expected time frame: 3 weeks)\n"
	p := Extract(text)
	var nums []int
	for _, task := range p.Tasks {
		nums = append(nums, task.Number)
	}
	if !reflect.DeepEqual(nums, []int{3, 1, 1}) {
		t.Fatalf("numbers: got %v", nums)
	}
	if p.Tasks[2].Title != "A again" {
		t.Fatalf("third title: got %q", p.Tasks[2].Title)
	}
}

func TestExtractTolerantMarker(t *testing.T) {
	text := "Theme: T\n1.   **Multi\nline**  spans\ntwo lines\n( expected   TIME frame :  about 3 weeks )"
	p := Extract(text)
	if len(p.Tasks) != 1 {
		t.Fatalf("tasks: got %d", len(p.Tasks))
	}
	got := p.Tasks[0]
	if got.Title != "Multi\nline" || got.Description != "spans\ntwo lines" || got.TimeFrame != "about 3 weeks" {
		t.Fatalf("task: got %#v", got)
	}
}

func TestExtractOverflowingNumberIsSkipped(t *testing.T) {
	text := "Theme: T\n99999999999999999999. **Huge**\nd\n(Expected time frame: 1 week)\n" +
		"2. **Small**\nd\n(Expected time frame: 1 week)"
	p := Extract(text)
	if len(p.Tasks) != 1 || p.Tasks[0].Number != 2 || p.Tasks[0].Title != "Small" {
		t.Fatalf("tasks: got %#v", p.Tasks)
	}
}

func TestExtractSkipsIncompleteBlock(t *testing.T) {
	text := "Theme: T\n1. **No frame**\njust text\n"
	if p := Extract(text); len(p.Tasks) != 0 {
		t.Fatalf("expected no tasks, got %#v", p.Tasks)
	}
}

func TestExtractCountMatchesBlocks(t *testing.T) {
	for n := 0; n <= 6; n++ {
		p := MonthPlan{Theme: "Counting"}
		for i := 1; i <= n; i++ {
			p.Tasks = append(p.Tasks, Task{Number: i, Title: "Task", Description: "Do it.", TimeFrame: "1 week"})
		}
		got := Extract(Render(p))
		if len(got.Tasks) != n {
			t.Fatalf("n=%d: got %d tasks", n, len(got.Tasks))
		}
	}
}
