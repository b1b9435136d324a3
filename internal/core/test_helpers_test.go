package core

import (
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func testLogger() *zerolog.Logger {
	l := zerolog.Nop()
	return &l
}

// stackedDealer deals the given cards in order, cycling when exhausted.
func stackedDealer(cards ...int) Dealer {
	i := 0
	return func() int {
		c := cards[i%len(cards)]
		i++
		return c
	}
}

func newTestCoordinator(cards ...int) *Coordinator {
	registry := NewRegistry(stackedDealer(cards...))
	hub := NewHub(testLogger())
	return NewCoordinator(registry, hub, testLogger())
}

func errCode(err error) string {
	var ce *CoreError
	if errors.As(err, &ce) {
		return ce.Code
	}
	return ""
}

func mustEvent(t *testing.T, ch <-chan Event, kind EventKind) Event {
	t.Helper()

	deadline := time.After(2 * time.Second)
	for {
		select {
		case ev, ok := <-ch:
			if !ok {
				t.Fatalf("events channel closed while waiting for event kind %v", kind)
			}
			if ev.Kind == kind {
				return ev
			}
		case <-deadline:
			t.Fatalf("expected event kind %v not received", kind)
		}
	}
}
