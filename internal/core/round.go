package core

import "math/rand"

// Dealer produces a card value for a fresh round.
type Dealer func() int

func defaultDealer() int {
	return rand.Intn(maxCard) + 1
}

const (
	maxCard = 10
	// foldPenalty caps what folding the best card costs: the opponent
	// collects this fixed amount and the pot is discarded.
	foldPenalty = 10

	noWinner = -1
)

// Action is a player's move in the betting round.
type Action string

const (
	ActionCheck Action = "check"
	ActionBet   Action = "bet"
	ActionRaise Action = "raise"
	ActionCall  Action = "call"
	ActionFold  Action = "fold"
)

// Round is the state of one betting hand. Winner stays at noWinner until
// the round has one; a fold records it immediately, a call leaves it to
// resolve.
type Round struct {
	Turn      int
	Pot       int
	Completed bool
	Number    int
	Winner    int
}

// applyAction advances the round state machine for the player at seat.
// Callers hold the room lock. On error no state is mutated.
func (r *Room) applyAction(seat int, action Action, amount int) error {
	rd := r.Round
	if rd == nil {
		return coreError(ErrCodeInvalidAction, "round has not started")
	}
	if rd.Completed {
		return coreError(ErrCodeRoundCompleted, "round is already completed")
	}
	if seat < 0 || seat >= len(r.Players) {
		return coreError(ErrCodeInvalidAction, "invalid player index")
	}
	if seat != rd.Turn {
		return coreError(ErrCodeNotYourTurn, "not your turn")
	}

	player := r.Players[seat]
	opponent := r.Players[1-seat]

	switch action {
	case ActionCheck:
		rd.Turn = 1 - seat
	case ActionBet, ActionRaise:
		if amount <= 0 {
			return coreError(ErrCodeInvalidAction, "bet amount must be greater than zero")
		}
		if amount > player.Chips {
			return coreError(ErrCodeInsufficientChips, "not enough chips")
		}
		player.Chips -= amount
		rd.Pot += amount
		rd.Turn = 1 - seat
	case ActionFold:
		if player.Card == maxCard {
			opponent.Chips += foldPenalty
		} else {
			opponent.Chips += rd.Pot
		}
		rd.Pot = 0
		rd.Completed = true
		rd.Winner = 1 - seat
	case ActionCall:
		rd.Completed = true
	default:
		return coreError(ErrCodeInvalidAction, "invalid action")
	}
	return nil
}

// Outcome reports a resolved round: the winner's name (empty on a tie),
// the chips paid out at resolution time, and both revealed cards.
type Outcome struct {
	Winner string
	Tie    bool
	Payout int
	Cards  map[string]int
}

// RoundResult is the retained view of the last resolved round. It is
// carried in every snapshot after resolution so observers learn the
// outcome even though the next round has already been dealt.
type RoundResult struct {
	Number int
	Winner string
	Tie    bool
	Payout int
	Cards  map[string]int
}

// resolve finishes a completed round and deals the next one. Callers hold
// the room lock. A fold has already moved chips, so only the reset is left;
// a called round pays the pot to the strictly higher card. Equal cards roll
// the pot into the next round. Calling resolve again without an intervening
// completed action fails, so the pot can never be paid twice.
func (r *Room) resolve() (*Outcome, error) {
	rd := r.Round
	if rd == nil || !rd.Completed {
		return nil, coreError(ErrCodeRoundNotCompleted, "round is not completed")
	}

	out := &Outcome{
		Cards: map[string]int{
			r.Players[0].Name: r.Players[0].Card,
			r.Players[1].Name: r.Players[1].Card,
		},
	}

	carry := 0
	switch {
	case rd.Winner != noWinner:
		// Completed by fold: payout already applied.
		out.Winner = r.Players[rd.Winner].Name
	case r.Players[0].Card > r.Players[1].Card:
		r.Players[0].Chips += rd.Pot
		out.Winner = r.Players[0].Name
		out.Payout = rd.Pot
	case r.Players[1].Card > r.Players[0].Card:
		r.Players[1].Chips += rd.Pot
		out.Winner = r.Players[1].Name
		out.Payout = rd.Pot
	default:
		out.Tie = true
		carry = rd.Pot
	}

	r.lastResult = &RoundResult{
		Number: rd.Number,
		Winner: out.Winner,
		Tie:    out.Tie,
		Payout: out.Payout,
		Cards:  out.Cards,
	}

	if r.matchOver() {
		r.Status = StatusFinished
		r.Round = nil
		for _, p := range r.Players {
			p.Card = 0
		}
		return out, nil
	}

	// Starting seat alternates deterministically between rounds.
	r.startRound(rd.Number+1, rd.Number%2, carry)
	return out, nil
}

// matchOver reports whether a player is out of chips and no further round
// can be dealt.
func (r *Room) matchOver() bool {
	for _, p := range r.Players {
		if p.Chips <= 0 {
			return true
		}
	}
	return false
}
