package observability

import "testing"

func TestParseHeaders(t *testing.T) {
	got := parseHeaders(" api-key=abc , bad, x= ,team=planner")
	if len(got) != 2 || got["api-key"] != "abc" || got["team"] != "planner" {
		t.Fatalf("unexpected headers %#v", got)
	}
	if parseHeaders("") != nil {
		t.Fatalf("expected nil for empty input")
	}
}

func TestSampleRatioClamped(t *testing.T) {
	t.Setenv("OTEL_SAMPLER_RATIO", "4")
	if got := sampleRatio(); got != 1 {
		t.Fatalf("expected 1, got %v", got)
	}
	t.Setenv("OTEL_SAMPLER_RATIO", "-1")
	if got := sampleRatio(); got != 0 {
		t.Fatalf("expected 0, got %v", got)
	}
}
