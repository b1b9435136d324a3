package core

import "github.com/rs/zerolog"

// Coordinator composes the registry, round engine and broadcast hub under
// one ordering discipline: resolve the room under the registry read lock,
// mutate under the room's own lock, capture the snapshot and enqueue the
// publish before releasing it. Reads never publish.
type Coordinator struct {
	registry *Registry
	hub      *Hub
	log      *zerolog.Logger
}

// NewCoordinator wires the three core components together.
func NewCoordinator(registry *Registry, hub *Hub, logger *zerolog.Logger) *Coordinator {
	return &Coordinator{
		registry: registry,
		hub:      hub,
		log:      logger,
	}
}

// CreateRoom registers a room with its creator seated and publishes the
// initial snapshot.
func (c *Coordinator) CreateRoom(roomID, gameType, playerName string) (*RoomSnapshot, error) {
	room, err := c.registry.Create(roomID, gameType, playerName)
	if err != nil {
		return nil, err
	}

	room.mu.Lock()
	snap := room.snapshotLocked()
	c.hub.Publish(roomID, snap)
	room.mu.Unlock()

	c.log.Info().
		Str("room_id", roomID).
		Str("game_type", gameType).
		Str("player", playerName).
		Msg("room created")
	return snap, nil
}

// JoinRoom seats a player. Joining with an already-seated name is an
// idempotent success and publishes nothing; the second return value
// reports whether the seating actually happened.
func (c *Coordinator) JoinRoom(roomID, playerName string) (*RoomSnapshot, bool, error) {
	var (
		snap   *RoomSnapshot
		seated bool
	)
	err := c.registry.withRoom(roomID, func(room *Room) error {
		room.mu.Lock()
		defer room.mu.Unlock()

		var err error
		seated, err = room.seat(playerName)
		if err != nil {
			return err
		}
		snap = room.snapshotLocked()
		if seated {
			c.hub.Publish(roomID, snap)
		}
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	if seated {
		c.log.Info().
			Str("room_id", roomID).
			Str("player", playerName).
			Str("status", string(snap.Status)).
			Msg("player joined")
	}
	return snap, seated, nil
}

// Action applies a player's move to the room's round and publishes the
// resulting snapshot.
func (c *Coordinator) Action(roomID string, playerIndex int, action Action, amount int) (*RoomSnapshot, error) {
	var snap *RoomSnapshot
	err := c.registry.withRoom(roomID, func(room *Room) error {
		room.mu.Lock()
		defer room.mu.Unlock()

		if err := room.applyAction(playerIndex, action, amount); err != nil {
			return err
		}
		snap = room.snapshotLocked()
		c.hub.Publish(roomID, snap)
		return nil
	})
	if err != nil {
		return nil, err
	}
	c.log.Info().
		Str("room_id", roomID).
		Int("player_index", playerIndex).
		Str("action", string(action)).
		Int("bet_amount", amount).
		Msg("action applied")
	return snap, nil
}

// Reveal resolves a completed round, deals the next one and publishes the
// post-resolution snapshot.
func (c *Coordinator) Reveal(roomID string) (*Outcome, *RoomSnapshot, error) {
	var (
		out  *Outcome
		snap *RoomSnapshot
	)
	err := c.registry.withRoom(roomID, func(room *Room) error {
		room.mu.Lock()
		defer room.mu.Unlock()

		var err error
		out, err = room.resolve()
		if err != nil {
			return err
		}
		snap = room.snapshotLocked()
		c.hub.Publish(roomID, snap)
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	c.log.Info().
		Str("room_id", roomID).
		Str("winner", out.Winner).
		Bool("tie", out.Tie).
		Msg("round resolved")
	return out, snap, nil
}

// GetRoom returns the room's current snapshot without publishing.
func (c *Coordinator) GetRoom(roomID string) (*RoomSnapshot, error) {
	var snap *RoomSnapshot
	err := c.registry.withRoom(roomID, func(room *Room) error {
		room.mu.Lock()
		snap = room.snapshotLocked()
		room.mu.Unlock()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return snap, nil
}

// ListRooms returns summaries of all rooms in creation order.
func (c *Coordinator) ListRooms() []RoomSummary {
	return c.registry.List()
}

// DeleteRoom notifies and evicts all observers, then removes the room.
// The deletion notice runs to completion before the registry entry
// disappears.
func (c *Coordinator) DeleteRoom(roomID string) error {
	err := c.registry.Delete(roomID, func() {
		c.hub.PublishDeletion(roomID)
	})
	if err != nil {
		return err
	}
	c.log.Info().Str("room_id", roomID).Msg("room deleted")
	return nil
}

// Attach subscribes a new observer to a room. The current snapshot is
// queued for immediate delivery.
func (c *Coordinator) Attach(roomID string) (*Observer, error) {
	obs := NewObserver()
	err := c.registry.withRoom(roomID, func(room *Room) error {
		room.mu.Lock()
		c.hub.Attach(roomID, obs, room.snapshotLocked())
		room.mu.Unlock()
		return nil
	})
	if err != nil {
		return nil, err
	}
	c.log.Debug().Str("room_id", roomID).Str("observer_id", obs.ID).Msg("observer attached")
	return obs, nil
}

// Detach unsubscribes an observer; a disconnected or errored connection is
// treated the same way.
func (c *Coordinator) Detach(roomID string, obs *Observer) {
	c.hub.Detach(roomID, obs)
	c.log.Debug().Str("room_id", roomID).Str("observer_id", obs.ID).Msg("observer detached")
}
