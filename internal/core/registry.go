package core

import "sync"

// Registry owns the room_id -> Room mapping. It is constructed once at
// process start and injected into the Coordinator; registry-level mutations
// are rare and cheap, so a single RWMutex over the map is enough.
type Registry struct {
	mu     sync.RWMutex
	rooms  map[string]*Room
	order  []string
	dealer Dealer
}

// NewRegistry builds an empty registry. A nil dealer selects uniform random
// cards in [1,10]; tests inject a deterministic one.
func NewRegistry(deal Dealer) *Registry {
	if deal == nil {
		deal = defaultDealer
	}
	return &Registry{
		rooms:  make(map[string]*Room),
		dealer: deal,
	}
}

// Create registers a new room with its creator seated.
func (reg *Registry) Create(roomID, gameType, creator string) (*Room, error) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	if _, exists := reg.rooms[roomID]; exists {
		return nil, coreError(ErrCodeAlreadyExists, "room already exists")
	}
	room := newRoom(roomID, gameType, creator, reg.dealer)
	reg.rooms[roomID] = room
	reg.order = append(reg.order, roomID)
	return room, nil
}

// withRoom resolves a room and runs fn while still holding the registry
// read lock, so a concurrent Delete cannot interleave between lookup and
// use.
func (reg *Registry) withRoom(roomID string, fn func(*Room) error) error {
	reg.mu.RLock()
	defer reg.mu.RUnlock()

	room, ok := reg.rooms[roomID]
	if !ok {
		return coreError(ErrCodeRoomNotFound, "room not found")
	}
	return fn(room)
}

// RoomSummary is the listing view of a room.
type RoomSummary struct {
	RoomID   string
	GameType string
	Status   RoomStatus
	Players  []string
}

// List returns summaries in creation order.
func (reg *Registry) List() []RoomSummary {
	reg.mu.RLock()
	defer reg.mu.RUnlock()

	summaries := make([]RoomSummary, 0, len(reg.order))
	for _, id := range reg.order {
		room := reg.rooms[id]
		room.mu.Lock()
		names := make([]string, 0, len(room.Players))
		for _, p := range room.Players {
			names = append(names, p.Name)
		}
		summaries = append(summaries, RoomSummary{
			RoomID:   room.ID,
			GameType: room.GameType,
			Status:   room.Status,
			Players:  names,
		})
		room.mu.Unlock()
	}
	return summaries
}

// Delete removes a room. notify runs under the registry write lock before
// the entry disappears, so observers are told about the deletion before any
// later Get or List can miss the room, and nothing can attach mid-deletion.
func (reg *Registry) Delete(roomID string, notify func()) error {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	if _, ok := reg.rooms[roomID]; !ok {
		return coreError(ErrCodeRoomNotFound, "room not found")
	}
	if notify != nil {
		notify()
	}
	delete(reg.rooms, roomID)
	for i, id := range reg.order {
		if id == roomID {
			reg.order = append(reg.order[:i], reg.order[i+1:]...)
			break
		}
	}
	return nil
}
