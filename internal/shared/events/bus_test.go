package events

import (
	"context"
	"errors"
	"testing"
)

func TestPublishDeliversToSubscribers(t *testing.T) {
	bus := NewBus()

	var got []string
	bus.Subscribe("screening.completed", func(ctx context.Context, e Event) error {
		got = append(got, "typed:"+e.Type)
		return nil
	})
	bus.Subscribe("*", func(ctx context.Context, e Event) error {
		got = append(got, "wildcard:"+e.Type)
		return nil
	})

	bus.Publish(context.Background(), NewEvent("screening.completed", "test", nil))
	bus.Publish(context.Background(), NewEvent("tts.completed", "test", nil))

	want := []string{
		"typed:screening.completed",
		"wildcard:screening.completed",
		"wildcard:tts.completed",
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d deliveries, got %d: %v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("delivery %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestPublishSurvivesHandlerError(t *testing.T) {
	bus := NewBus()

	calls := 0
	bus.Subscribe("screening.completed", func(ctx context.Context, e Event) error {
		return errors.New("boom")
	})
	bus.Subscribe("screening.completed", func(ctx context.Context, e Event) error {
		calls++
		return nil
	})

	bus.Publish(context.Background(), NewEvent("screening.completed", "test", nil))

	if calls != 1 {
		t.Errorf("expected second handler to run, calls = %d", calls)
	}
}

func TestNewEventPopulatesMetadata(t *testing.T) {
	e := NewEvent("screening.completed", "screening-service", map[string]string{"k": "v"})

	if e.ID == "" {
		t.Error("expected generated event ID")
	}
	if e.Type != "screening.completed" {
		t.Errorf("unexpected type %q", e.Type)
	}
	if e.Source != "screening-service" {
		t.Errorf("unexpected source %q", e.Source)
	}
	if e.Timestamp.IsZero() {
		t.Error("expected timestamp to be set")
	}

	correlated := e.WithCorrelation("req-123")
	if correlated.CorrelationID != "req-123" {
		t.Error("correlation ID not set")
	}
	if e.CorrelationID != "" {
		t.Error("WithCorrelation should not mutate the original")
	}
}
