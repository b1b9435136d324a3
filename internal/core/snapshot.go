package core

// RoomSnapshot is an immutable full copy of a room's observable state,
// captured under the room lock and safe to hand to observers afterwards.
type RoomSnapshot struct {
	RoomID   string
	GameType string
	Status   RoomStatus
	Players  []PlayerSnapshot
	Round    *RoundSnapshot
	// LastResult reports the previously resolved round, if any.
	LastResult *RoundResult
}

// PlayerSnapshot carries a player's public state. Card is nil until the
// round completes: unrevealed cards never leave the core.
type PlayerSnapshot struct {
	Name  string
	Chips int
	Card  *int
}

// RoundSnapshot mirrors the active round.
type RoundSnapshot struct {
	CurrentTurn    int
	Pot            int
	RoundCompleted bool
	RoundNumber    int
	Winner         *string
}

// snapshotLocked copies out the observable room state. Callers hold the
// room lock. Cards are included only once the round is completed, so a
// broadcast can never leak an opponent's live card.
func (r *Room) snapshotLocked() *RoomSnapshot {
	reveal := r.Round != nil && r.Round.Completed

	players := make([]PlayerSnapshot, 0, len(r.Players))
	for _, p := range r.Players {
		ps := PlayerSnapshot{Name: p.Name, Chips: p.Chips}
		if reveal && p.Card != 0 {
			card := p.Card
			ps.Card = &card
		}
		players = append(players, ps)
	}

	snap := &RoomSnapshot{
		RoomID:   r.ID,
		GameType: r.GameType,
		Status:   r.Status,
		Players:  players,
	}
	if lr := r.lastResult; lr != nil {
		cards := make(map[string]int, len(lr.Cards))
		for name, card := range lr.Cards {
			cards[name] = card
		}
		result := *lr
		result.Cards = cards
		snap.LastResult = &result
	}
	if rd := r.Round; rd != nil {
		rs := &RoundSnapshot{
			CurrentTurn:    rd.Turn,
			Pot:            rd.Pot,
			RoundCompleted: rd.Completed,
			RoundNumber:    rd.Number,
		}
		if rd.Winner != noWinner {
			name := r.Players[rd.Winner].Name
			rs.Winner = &name
		}
		snap.Round = rs
	}
	return snap
}
