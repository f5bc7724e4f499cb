package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestMemoryBusPublishBeforeStart(t *testing.T) {
	bus := NewMemoryBus(zap.NewNop())
	if err := bus.Publish(context.Background(), TopicTicketsIncoming, "payload", ""); err == nil {
		t.Fatal("publish before start should fail")
	}
}

func TestMemoryBusFIFOPerTopic(t *testing.T) {
	bus := NewMemoryBus(zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := bus.Start(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}
	defer bus.Stop() //nolint:errcheck

	received := make(chan string, 16)
	go bus.Consume(ctx, func(_ context.Context, topic string, payload []byte) error { //nolint:errcheck
		if topic == TopicTicketsIncoming {
			received <- string(payload)
		}
		return nil
	})

	for _, msg := range []string{"first", "second", "third"} {
		if err := bus.Publish(ctx, TopicTicketsIncoming, msg, "key"); err != nil {
			t.Fatalf("publish %q: %v", msg, err)
		}
	}

	for _, want := range []string{`"first"`, `"second"`, `"third"`} {
		select {
		case got := <-received:
			if got != want {
				t.Errorf("got %s, want %s", got, want)
			}
		case <-time.After(2 * time.Second):
			t.Fatal("timed out waiting for message")
		}
	}
}

func TestMemoryBusHandlerErrorDoesNotStopLoop(t *testing.T) {
	bus := NewMemoryBus(zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := bus.Start(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}
	defer bus.Stop() //nolint:errcheck

	received := make(chan string, 16)
	calls := 0
	go bus.Consume(ctx, func(_ context.Context, topic string, payload []byte) error { //nolint:errcheck
		if topic != TopicTicketsIncoming {
			return nil
		}
		calls++
		if calls == 1 {
			return errors.New("transient failure")
		}
		received <- string(payload)
		return nil
	})

	if err := bus.Publish(ctx, TopicTicketsIncoming, "doomed", ""); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if err := bus.Publish(ctx, TopicTicketsIncoming, "survivor", ""); err != nil {
		t.Fatalf("publish: %v", err)
	}

	select {
	case got := <-received:
		if got != `"survivor"` {
			t.Errorf("got %s, want survivor", got)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("loop stopped after handler error")
	}
}

func TestMemoryBusTopicIsolation(t *testing.T) {
	bus := NewMemoryBus(zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := bus.Start(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}
	defer bus.Stop() //nolint:errcheck

	type delivery struct {
		topic   string
		payload string
	}
	received := make(chan delivery, 16)
	go bus.Consume(ctx, func(_ context.Context, topic string, payload []byte) error { //nolint:errcheck
		received <- delivery{topic, string(payload)}
		return nil
	})

	if err := bus.Publish(ctx, TopicEscalations, "esc", ""); err != nil {
		t.Fatalf("publish: %v", err)
	}

	select {
	case got := <-received:
		if got.topic != TopicEscalations {
			t.Errorf("delivered on %s, want %s", got.topic, TopicEscalations)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for delivery")
	}
}
