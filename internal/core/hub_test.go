package core

import (
	"sync"
	"testing"
	"time"
)

func testSnapshot(roomID string, pot int) *RoomSnapshot {
	return &RoomSnapshot{
		RoomID: roomID,
		Status: StatusPlaying,
		Round:  &RoundSnapshot{Pot: pot, RoundNumber: 1},
	}
}

func TestAttachDeliversCurrentSnapshot(t *testing.T) {
	hub := NewHub(testLogger())

	obs := NewObserver()
	hub.Attach("r1", obs, testSnapshot("r1", 5))

	ev := mustEvent(t, obs.Events, EventSnapshot)
	if ev.Room != "r1" || ev.Snapshot.Round.Pot != 5 {
		t.Fatalf("unexpected attach snapshot: %+v", ev)
	}
}

func TestPublishReachesAllObservers(t *testing.T) {
	hub := NewHub(testLogger())

	a := NewObserver()
	b := NewObserver()
	hub.Attach("r1", a, testSnapshot("r1", 0))
	hub.Attach("r1", b, testSnapshot("r1", 0))
	mustEvent(t, a.Events, EventSnapshot)
	mustEvent(t, b.Events, EventSnapshot)

	hub.Publish("r1", testSnapshot("r1", 7))

	for _, obs := range []*Observer{a, b} {
		ev := mustEvent(t, obs.Events, EventSnapshot)
		if ev.Snapshot.Round.Pot != 7 {
			t.Fatalf("unexpected snapshot: %+v", ev)
		}
	}
}

func TestSlowObserverEvictedWithoutBlockingOthers(t *testing.T) {
	hub := NewHub(testLogger())

	slow := NewObserver()
	hub.Attach("r1", slow, testSnapshot("r1", 0))

	// Fill the slow observer's buffer without draining it.
	for i := 0; i < observerBuffer-1; i++ {
		hub.Publish("r1", testSnapshot("r1", i))
	}

	fast := NewObserver()
	hub.Attach("r1", fast, testSnapshot("r1", 0))
	mustEvent(t, fast.Events, EventSnapshot)

	// This delivery fails for the full observer and evicts it.
	hub.Publish("r1", testSnapshot("r1", 99))

	ev := mustEvent(t, fast.Events, EventSnapshot)
	if ev.Snapshot.Round.Pot != 99 {
		t.Fatalf("fast observer missed the publish: %+v", ev)
	}

	// The evicted observer's channel closes after its buffered events.
	received := 0
	deadline := time.After(2 * time.Second)
	for {
		select {
		case _, ok := <-slow.Events:
			if !ok {
				if received > observerBuffer {
					t.Fatalf("received %d events, more than the buffer bound", received)
				}
				return
			}
			received++
		case <-deadline:
			t.Fatal("evicted observer's channel never closed")
		}
	}
}

func TestPublishDeletionNotifiesAndDetachesAll(t *testing.T) {
	hub := NewHub(testLogger())

	a := NewObserver()
	b := NewObserver()
	hub.Attach("r1", a, testSnapshot("r1", 0))
	hub.Attach("r1", b, testSnapshot("r1", 0))
	mustEvent(t, a.Events, EventSnapshot)
	mustEvent(t, b.Events, EventSnapshot)

	hub.PublishDeletion("r1")

	for _, obs := range []*Observer{a, b} {
		ev := mustEvent(t, obs.Events, EventRoomDeleted)
		if ev.Room != "r1" {
			t.Fatalf("unexpected deletion event: %+v", ev)
		}
		if _, ok := <-obs.Events; ok {
			t.Fatal("observer channel still open after deletion")
		}
	}

	// The entry is gone; publishing again is a harmless no-op.
	hub.Publish("r1", testSnapshot("r1", 1))

	hub.mu.Lock()
	entries := len(hub.rooms)
	hub.mu.Unlock()
	if entries != 0 {
		t.Fatalf("expected no hub entries after deletion, got %d", entries)
	}
}

// Detaching while a fan-out for the same room is in flight must never
// reach a closed channel: sends and closes are serialized on the hub lock.
func TestConcurrentAttachPublishDetach(t *testing.T) {
	hub := NewHub(testLogger())
	snap := testSnapshot("r1", 0)

	stop := make(chan struct{})
	var publishers sync.WaitGroup
	for i := 0; i < 4; i++ {
		publishers.Add(1)
		go func() {
			defer publishers.Done()
			for {
				select {
				case <-stop:
					return
				default:
					hub.Publish("r1", snap)
				}
			}
		}()
	}

	var churn sync.WaitGroup
	for i := 0; i < 8; i++ {
		churn.Add(1)
		go func() {
			defer churn.Done()
			for j := 0; j < 200; j++ {
				obs := NewObserver()
				hub.Attach("r1", obs, snap)
				// Drain a little so some observers survive until detach
				// and others fill up and get evicted.
				for k := 0; k < j%4; k++ {
					select {
					case <-obs.Events:
					default:
					}
				}
				hub.Detach("r1", obs)
			}
		}()
	}

	churn.Wait()
	close(stop)
	publishers.Wait()
}

func TestDetachReleasesEmptyEntry(t *testing.T) {
	hub := NewHub(testLogger())

	obs := NewObserver()
	hub.Attach("r1", obs, testSnapshot("r1", 0))
	mustEvent(t, obs.Events, EventSnapshot)

	hub.Detach("r1", obs)
	if _, ok := <-obs.Events; ok {
		t.Fatal("observer channel still open after detach")
	}

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		hub.mu.Lock()
		entries := len(hub.rooms)
		hub.mu.Unlock()
		if entries == 0 {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("hub entry not released after last detach")
}
