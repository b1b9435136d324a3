package core

import "sync"

// RoomStatus tracks where a room is in its lifecycle.
type RoomStatus string

const (
	StatusWaiting  RoomStatus = "waiting"
	StatusPlaying  RoomStatus = "playing"
	StatusFinished RoomStatus = "finished"
)

const (
	// MaxSeats is fixed: the betting game is strictly heads-up.
	MaxSeats = 2
	// StartingStake is the chip balance each player is seated with.
	StartingStake = 30
)

// Player is a seated participant. Card is 0 until a round deals one.
type Player struct {
	Name  string
	Chips int
	Card  int
}

// Room owns its players and the active round. Seating order is turn order.
// All mutable fields are guarded by mu; the Coordinator acquires it around
// every mutation and snapshot capture.
type Room struct {
	mu sync.Mutex

	ID       string
	GameType string
	Status   RoomStatus
	Players  []*Player
	Round    *Round

	// lastResult is the outcome of the most recently resolved round, kept
	// so observers attaching or reading after resolution still see who won.
	lastResult *RoundResult

	deal Dealer
}

func newRoom(id, gameType, creator string, deal Dealer) *Room {
	return &Room{
		ID:       id,
		GameType: gameType,
		Status:   StatusWaiting,
		Players:  []*Player{{Name: creator, Chips: StartingStake}},
		deal:     deal,
	}
}

// seat adds a player to the room. Seating an already-present name is a
// no-op success, reported through the second return value. Seating the
// second distinct player switches the room to playing and deals the first
// round in the same critical section, so "two players, still waiting" is
// never observable.
func (r *Room) seat(name string) (bool, error) {
	for _, p := range r.Players {
		if p.Name == name {
			return false, nil
		}
	}
	if len(r.Players) >= MaxSeats {
		return false, coreError(ErrCodeRoomFull, "room is full")
	}
	r.Players = append(r.Players, &Player{Name: name, Chips: StartingStake})
	if len(r.Players) == MaxSeats {
		r.Status = StatusPlaying
		r.startRound(1, 0, 0)
	}
	return true, nil
}

// startRound replaces the active round wholesale and deals fresh cards.
// carry is the pot rolled over from a tied round.
func (r *Room) startRound(number, turn, carry int) {
	for _, p := range r.Players {
		p.Card = r.deal()
	}
	r.Round = &Round{
		Turn:   turn,
		Pot:    carry,
		Number: number,
		Winner: noWinner,
	}
}
