package core

import (
	"sync"

	"github.com/rs/zerolog"
)

// Hub fans room snapshots out to live observers. It holds no business
// logic: callers validate room existence against the registry before
// attaching, and enqueue publishes while still holding the room's mutation
// lock so events queue in mutation order. Delivery itself runs on a single
// per-room drain goroutine; sends are select/default and stay under the
// hub lock, mutually exclusive with the channel close in Detach.
type Hub struct {
	mu    sync.Mutex
	log   *zerolog.Logger
	rooms map[string]*hubRoom
}

type hubRoom struct {
	observers map[*Observer]struct{}
	pending   []hubTask
	draining  bool
}

type hubTask struct {
	event Event
	// only targets the initial delivery after an attach.
	only *Observer
	// done is signalled after a deletion notice has been fully fanned out.
	done chan struct{}
}

// NewHub creates an empty hub.
func NewHub(logger *zerolog.Logger) *Hub {
	return &Hub{
		log:   logger,
		rooms: make(map[string]*hubRoom),
	}
}

// Attach registers an observer for a room and queues immediate delivery of
// the current snapshot, so late joiners never see stale state.
func (h *Hub) Attach(roomID string, obs *Observer, snapshot *RoomSnapshot) {
	h.mu.Lock()
	defer h.mu.Unlock()

	hr := h.rooms[roomID]
	if hr == nil {
		hr = &hubRoom{observers: make(map[*Observer]struct{})}
		h.rooms[roomID] = hr
	}
	hr.observers[obs] = struct{}{}
	h.enqueueLocked(roomID, hr, hubTask{
		event: Event{Kind: EventSnapshot, Room: roomID, Snapshot: snapshot},
		only:  obs,
	})
}

// Detach removes an observer and closes its channel. Once nothing
// references the room's entry it is released; the room itself is not.
func (h *Hub) Detach(roomID string, obs *Observer) {
	h.mu.Lock()
	defer h.mu.Unlock()

	hr := h.rooms[roomID]
	if hr == nil {
		return
	}
	if _, ok := hr.observers[obs]; !ok {
		return
	}
	delete(hr.observers, obs)
	close(obs.Events)
	h.releaseLocked(roomID, hr)
}

// Publish queues a snapshot for fan-out to every observer of the room.
func (h *Hub) Publish(roomID string, snapshot *RoomSnapshot) {
	h.mu.Lock()
	defer h.mu.Unlock()

	hr := h.rooms[roomID]
	if hr == nil {
		return
	}
	h.enqueueLocked(roomID, hr, hubTask{
		event: Event{Kind: EventSnapshot, Room: roomID, Snapshot: snapshot},
	})
}

// PublishDeletion sends the terminal deletion notice, detaches every
// observer and releases the room's entry. It returns only once the notice
// has been fanned out, so the registry can safely remove the room after.
func (h *Hub) PublishDeletion(roomID string) {
	h.mu.Lock()
	hr := h.rooms[roomID]
	if hr == nil {
		h.mu.Unlock()
		return
	}
	done := make(chan struct{})
	h.enqueueLocked(roomID, hr, hubTask{
		event: Event{Kind: EventRoomDeleted, Room: roomID},
		done:  done,
	})
	h.mu.Unlock()

	<-done
}

func (h *Hub) enqueueLocked(roomID string, hr *hubRoom, task hubTask) {
	hr.pending = append(hr.pending, task)
	if !hr.draining {
		hr.draining = true
		go h.drain(roomID, hr)
	}
}

func (h *Hub) releaseLocked(roomID string, hr *hubRoom) {
	if len(hr.observers) == 0 && !hr.draining && len(hr.pending) == 0 {
		delete(h.rooms, roomID)
	}
}

// drain delivers queued events in order. At most one drain goroutine runs
// per room; it exits when the queue empties or the room is deleted. Sends
// are select/default against each observer's bounded buffer, so they never
// block and can stay under the hub lock: a send can therefore never race a
// Detach closing the same channel. An observer that fails delivery once is
// evicted and never delivered to again.
func (h *Hub) drain(roomID string, hr *hubRoom) {
	for {
		h.mu.Lock()
		if len(hr.pending) == 0 {
			hr.draining = false
			h.releaseLocked(roomID, hr)
			h.mu.Unlock()
			return
		}
		task := hr.pending[0]
		hr.pending = hr.pending[1:]

		if task.only != nil {
			if _, ok := hr.observers[task.only]; ok {
				h.deliverLocked(roomID, hr, task.only, task.event)
			}
		} else {
			for obs := range hr.observers {
				h.deliverLocked(roomID, hr, obs, task.event)
			}
		}

		if task.event.Kind == EventRoomDeleted {
			for obs := range hr.observers {
				delete(hr.observers, obs)
				close(obs.Events)
			}
			hr.pending = nil
			hr.draining = false
			delete(h.rooms, roomID)
			h.mu.Unlock()
			close(task.done)
			return
		}
		h.mu.Unlock()
	}
}

func (h *Hub) deliverLocked(roomID string, hr *hubRoom, obs *Observer, event Event) {
	select {
	case obs.Events <- event:
	default:
		delete(hr.observers, obs)
		close(obs.Events)
		h.log.Warn().
			Str("room_id", roomID).
			Str("observer_id", obs.ID).
			Msg("observer evicted after failed delivery")
	}
}
