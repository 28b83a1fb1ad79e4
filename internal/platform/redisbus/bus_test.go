package redisbus

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/yungbote/careercompass-backend/internal/platform/logger"
)

func TestPublishSubscribe(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set")
	}
	b, err := New(logger.Nop(), Config{Addr: addr, Channel: "plan_events_test"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer b.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	got := make(chan Event, 1)
	if err := b.Subscribe(ctx, func(ev Event) { got <- ev }); err != nil {
		t.Fatalf("Subscribe: %v", err)
	}
	passed := true
	if err := b.Publish(ctx, Event{RunID: "r1", Event: "month_accepted", Month: 3, Passed: &passed}); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	select {
	case ev := <-got:
		if ev.RunID != "r1" || ev.Month != 3 || ev.Passed == nil || !*ev.Passed {
			t.Fatalf("unexpected event %#v", ev)
		}
		if ev.At.IsZero() {
			t.Fatalf("expected timestamp")
		}
	case <-ctx.Done():
		t.Fatalf("timed out waiting for event")
	}
}

func TestNewRequiresAddr(t *testing.T) {
	if _, err := New(logger.Nop(), Config{}); err == nil {
		t.Fatalf("expected error without addr")
	}
}
