package proto

// Frame types pushed to room observers. The server defines no
// client-to-server streaming protocol; inbound frames only keep the
// connection alive.
const (
	OutboundTypeSnapshot    = "snapshot"
	OutboundTypeRoomDeleted = "room_deleted"
)

// Outbound is the envelope for frames sent to observers.
type Outbound struct {
	Type string     `json:"type"`
	Room string     `json:"room_id"`
	Data *RoomState `json:"data,omitempty"`
}

// RoomState is the full observable state of a room.
type RoomState struct {
	RoomID   string        `json:"room_id"`
	GameType string        `json:"game_type"`
	Status   string        `json:"status"`
	Players  []PlayerState `json:"players"`
	Round    *RoundState   `json:"round,omitempty"`
	// LastRound is the outcome of the previously resolved round, if any.
	LastRound *RoundResultState `json:"last_round,omitempty"`
}

// PlayerState is a seated player's public state. Card is present only
// once the round has completed.
type PlayerState struct {
	Name  string `json:"player_name"`
	Chips int    `json:"chips"`
	Card  *int   `json:"card,omitempty"`
}

// RoundResultState reports a resolved round: number, winner (absent on a
// tie), paid-out chips and both revealed cards.
type RoundResultState struct {
	RoundNumber int            `json:"round_number"`
	Winner      string         `json:"winner,omitempty"`
	Tie         bool           `json:"tie"`
	Payout      int            `json:"payout"`
	Cards       map[string]int `json:"cards"`
}

// RoundState mirrors the active betting round.
type RoundState struct {
	CurrentTurn    int     `json:"current_turn"`
	Pot            int     `json:"pot"`
	RoundCompleted bool    `json:"round_completed"`
	RoundNumber    int     `json:"round_number"`
	Winner         *string `json:"winner,omitempty"`
}
